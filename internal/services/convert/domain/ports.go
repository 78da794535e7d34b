package domain

import "context"

// RunnerPort is the public port exposed by the module
type RunnerPort interface {
	Run(ctx context.Context) (Summary, error)
}

// Ingest reads the source, stages the repaired array and parses it back
type Ingest interface {
	// Load reads and decodes the source file
	Load(ctx context.Context, path string) (Source, error)

	// Stage writes the array text to the intermediate file
	Stage(ctx context.Context, path, text string) error

	// Parse reads the intermediate file into raw records, in order
	Parse(ctx context.Context, path string) ([]RawItem, error)
}

// Normalizer turns raw records into output rows
type Normalizer interface {
	All(ctx context.Context, raws []RawItem) ([]Item, error)
}

// Sink persists the normalized rows as the output file
type Sink interface {
	Write(ctx context.Context, path string, items []Item) error
}

// ItemStore loads normalized rows into a database table
type ItemStore interface {
	Load(ctx context.Context, items []Item) (int64, error)
}

// IDFunc generates a fresh unique id per record
type IDFunc func() string
