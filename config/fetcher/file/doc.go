// Package file provides a config.DataFetcher reading a file once.
//
// Variables files and the YAML documents behind the file store are loaded
// through it. Passing Stdin ("-") reads standard input, so paramctl can take
// its variables from a pipe.
//
//	fetcher, err := file.NewFetcher("vars.yaml")()
//	if err != nil {
//	    return err
//	}
//	data, err := fetcher.Fetch()
//
// Construction fails when the path cannot be read or is a directory
// (errors.Is(err, file.ErrPathIsDirectory)). Later changes to the file are not
// seen by Fetch.
package file
