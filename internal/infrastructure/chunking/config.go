package chunking

// Config bounds chunk sizes and overlap for both chunking strategies.
type Config struct {
	MaxChunkSize      int
	MinChunkSize      int
	OverlapSize       int
	ContextWindow     int
	PreserveStructure bool
}

func DefaultConfig() Config {
	return Config{
		MaxChunkSize:      512,
		MinChunkSize:      100,
		OverlapSize:       50,
		ContextWindow:     2,
		PreserveStructure: true,
	}
}

func (c Config) normalize() Config {
	out := c
	def := DefaultConfig()
	if out.MaxChunkSize <= 0 {
		out.MaxChunkSize = def.MaxChunkSize
	}
	if out.MinChunkSize <= 0 || out.MinChunkSize >= out.MaxChunkSize {
		out.MinChunkSize = out.MaxChunkSize / 5
	}
	if out.OverlapSize < 0 {
		out.OverlapSize = def.OverlapSize
	}
	if out.ContextWindow <= 0 {
		out.ContextWindow = def.ContextWindow
	}
	return out
}
