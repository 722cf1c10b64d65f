// Package loader loads the raw kornmo tables into frames.
//
// Every source implements the one-method Loader interface. The pipeline
// composes two of them per table: a CSV loader over the fixed-path cache file
// and a caller-supplied fetch collaborator, wired together by
// FileWithFallback so a missing cache file falls through to the fetcher. An
// Excel loader is provided for tables that only exist as xlsx workbooks from
// the directorate.
//
// A missing file is reported as ErrNotFound and is the only condition the
// fallback recovers from; any other failure propagates to the caller.
package loader
