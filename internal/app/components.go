package app

import "go.trai.ch/sci/internal/core/ports"

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

// Close flushes the progress recorder and logs how the recorded invocations ended.
func (c *Components) Close() error {
	if c.Telemetry == nil {
		return nil
	}
	err := c.Telemetry.Close()
	if sum := c.Telemetry.Summary(); sum.Total() > 0 && c.Logger != nil {
		c.Logger.Info(sum.String())
	}
	return err
}
