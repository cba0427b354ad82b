package charts

// ChartConfig is everything a backend needs to draw one chart.
type ChartConfig struct {
	Name       string
	Title      string
	Mode       Mode
	Data       ChartData
	Labels     DataLabels
	FontSize   int
	FontColor  string
	Animations bool
	Height     int
}

// Handle is a live chart owned by the caller until Destroy.
type Handle interface {
	Destroy() error
}

// Backend turns a configuration into a live chart.
type Backend interface {
	Create(cfg ChartConfig) (Handle, error)
}
