package model

import (
	"fmt"
	"time"
)

// Config is the panels configuration file.
type Config struct {
	Version     string                `yaml:"version"`
	Datasources map[string]Datasource `yaml:"datasources"`
	Panels      []Panel               `yaml:"panels"`
}

// Validate validates the configuration and sets the IDs that come from the
// map keys.
func (c *Config) Validate() error {
	if c.Version != "v1" {
		return fmt.Errorf("unsupported configuration version %q", c.Version)
	}

	if len(c.Panels) == 0 {
		return fmt.Errorf("at least one panel is required")
	}

	for id, ds := range c.Datasources {
		ds.ID = id
		if err := ds.Validate(); err != nil {
			return fmt.Errorf("datasource %q: %w", id, err)
		}
		c.Datasources[id] = ds
	}

	// Set IDs are kept, the generated ones don't collide with them.
	ids := map[string]bool{}
	for _, p := range c.Panels {
		if p.ID == "" {
			continue
		}
		if ids[p.ID] {
			return fmt.Errorf("duplicated panel ID %q", p.ID)
		}
		ids[p.ID] = true
	}

	for i := range c.Panels {
		p := &c.Panels[i]
		if p.ID == "" {
			p.ID = fmt.Sprintf("panel-%d", i)
			for n := 2; ids[p.ID]; n++ {
				p.ID = fmt.Sprintf("panel-%d-%d", i, n)
			}
			ids[p.ID] = true
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("panel %q: %w", p.ID, err)
		}

		for _, q := range p.Queries {
			dsID := q.DatasourceID
			if dsID == "" {
				dsID = p.DatasourceID
			}
			if _, ok := c.Datasources[dsID]; !ok {
				return fmt.Errorf("panel %q: missing datasource %q", p.ID, dsID)
			}
		}
	}

	return nil
}

// Datasource is a metrics backend, exactly one of the kinds must be set.
type Datasource struct {
	ID         string                `yaml:"-"`
	Prometheus *PrometheusDatasource `yaml:"prometheus,omitempty"`
	Graphite   *GraphiteDatasource   `yaml:"graphite,omitempty"`
	InfluxDB   *InfluxDBDatasource   `yaml:"influxdb,omitempty"`
	Fake       *FakeDatasource       `yaml:"fake,omitempty"`
}

// Validate validates the datasource.
func (d Datasource) Validate() error {
	set := 0
	if d.Prometheus != nil {
		set++
		if d.Prometheus.Address == "" {
			return fmt.Errorf("prometheus address is required")
		}
	}
	if d.Graphite != nil {
		set++
		if d.Graphite.Address == "" {
			return fmt.Errorf("graphite address is required")
		}
	}
	if d.InfluxDB != nil {
		set++
		if d.InfluxDB.Address == "" {
			return fmt.Errorf("influxdb address is required")
		}
	}
	if d.Fake != nil {
		set++
	}

	if set != 1 {
		return fmt.Errorf("exactly one datasource kind must be set, got %d", set)
	}
	return nil
}

// PrometheusDatasource is the Prometheus kind datasource.
type PrometheusDatasource struct {
	Address string `yaml:"address"`
}

// GraphiteDatasource is the Graphite kind datasource.
type GraphiteDatasource struct {
	Address string `yaml:"address"`
}

// InfluxDBDatasource is the InfluxDB kind datasource.
type InfluxDBDatasource struct {
	Address  string `yaml:"address"`
	Database string `yaml:"database"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Insecure bool   `yaml:"insecure,omitempty"`
}

// FakeDatasource generates series without any backend.
type FakeDatasource struct {
	// Empty makes the datasource return series without points.
	Empty bool `yaml:"empty,omitempty"`
}

// Panel is a time series panel configuration.
type Panel struct {
	ID           string        `yaml:"id,omitempty"`
	Title        string        `yaml:"title,omitempty"`
	DatasourceID string        `yaml:"datasource"`
	Queries      []Query       `yaml:"queries"`
	Range        time.Duration `yaml:"range,omitempty"`
	Step         time.Duration `yaml:"step,omitempty"`
	Refresh      time.Duration `yaml:"refresh,omitempty"`
	Options      ChartOptions  `yaml:"options,omitempty"`
	Layout       Layout        `yaml:"layout,omitempty"`
	Drawer       string        `yaml:"drawer,omitempty"`
}

// Validate validates the panel.
func (p Panel) Validate() error {
	if len(p.Queries) == 0 {
		return fmt.Errorf("at least one query is required")
	}
	for i, q := range p.Queries {
		if q.Expr == "" {
			return fmt.Errorf("query %d: expression is required", i)
		}
	}
	if p.Range < 0 || p.Step < 0 || p.Refresh < 0 {
		return fmt.Errorf("range, step and refresh can't be negative")
	}
	return nil
}
