// Package logging builds the slog.Logger shared by the resolver, the Fx
// application and paramctl. Output is JSON by default; text output is
// available for interactive use. Logs go to the writer the caller passes,
// which is stderr for paramctl so stdout stays free for resolved values.
package logging
