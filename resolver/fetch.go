package resolver

import (
	"context"
	"errors"
	"log/slog"
)

// Mode selects how parameters are fetched from the store.
type Mode string

const (
	// ModeFlat fetches one parameter per declared variable.
	ModeFlat Mode = "flat"
	// ModeTree lists every parameter under the root path, page by page.
	ModeTree Mode = "tree"
)

const (
	opGetParameter        = "get_parameter"
	opGetParametersByPath = "get_parameters_by_path"
)

type fetcher struct {
	store    Store
	rootPath string
	raise    bool
	logger   *slog.Logger
	metrics  *Metrics
}

func (f *fetcher) mode() Mode {
	if f.rootPath == "" {
		return ModeFlat
	}

	return ModeTree
}

func (f *fetcher) fetch(ctx context.Context, vars Variables) ([]Parameter, error) {
	if f.mode() == ModeFlat {
		return f.fetchFlat(ctx, vars)
	}

	return f.fetchTree(ctx)
}

// fetchFlat issues one request per variable, in declaration order, using the declared path verbatim.
func (f *fetcher) fetchFlat(ctx context.Context, vars Variables) ([]Parameter, error) {
	params := make([]Parameter, 0, len(vars))

	for _, variable := range vars {
		f.metrics.request(ModeFlat, opGetParameter)

		param, err := f.store.GetParameter(ctx, variable.Path, true)
		if err == nil {
			params = append(params, param)

			continue
		}

		classified := classify(opGetParameter, variable.Path, err)
		f.metrics.storeError(ModeFlat, classified.Class)

		if errors.Is(err, ErrParameterNotFound) && !f.raise {
			f.logger.Debug("parameter not found, skipping",
				slog.String("variable", variable.Name),
				slog.String("path", variable.Path))

			continue
		}

		f.logger.Error("fetching parameter failed",
			slog.String("variable", variable.Name),
			slog.String("path", variable.Path),
			slog.String("class", classified.Class))

		return nil, classified
	}

	return params, nil
}

// fetchTree lists the root path recursively until the store stops returning a continuation token.
func (f *fetcher) fetchTree(ctx context.Context) ([]Parameter, error) {
	var params []Parameter

	query := PathQuery{
		Path:           f.rootPath,
		Recursive:      true,
		WithDecryption: true,
		NextToken:      "",
	}

	pages := 0

	for first := true; first || query.NextToken != ""; first = false {
		f.metrics.request(ModeTree, opGetParametersByPath)

		page, err := f.store.GetParametersByPath(ctx, query)
		if err != nil {
			classified := classify(opGetParametersByPath, f.rootPath, err)

			f.metrics.storeError(ModeTree, classified.Class)
			f.logger.Error("listing parameters failed",
				slog.String("root_path", f.rootPath),
				slog.Int("page", pages+1),
				slog.String("class", classified.Class))

			return nil, classified
		}

		pages++

		params = append(params, page.Parameters...)
		query.NextToken = page.NextToken
	}

	f.logger.Debug("listed parameters",
		slog.String("root_path", f.rootPath),
		slog.Int("pages", pages),
		slog.Int("parameters", len(params)))

	return params, nil
}
