package pngpdf

// ConvertOptions holds configuration for converting a PNG file on disk.
type ConvertOptions struct {
	// dryRun converts without writing the PDF or touching the source.
	dryRun bool

	// removeOriginal deletes the source PNG after the PDF is written.
	// Ignored during a dry run.
	removeOriginal bool
}

// defaultOptions returns the default conversion options.
func defaultOptions() ConvertOptions {
	return ConvertOptions{
		dryRun:         false,
		removeOriginal: false,
	}
}

// clone creates a copy of ConvertOptions.
func (o ConvertOptions) clone() ConvertOptions {
	return ConvertOptions{
		dryRun:         o.dryRun,
		removeOriginal: o.removeOriginal,
	}
}
