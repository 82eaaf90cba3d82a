package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/mitsuyukiLab/tpg-ship-sim/config"
)

// OutputManager handles structured simulation output with CSV logging.
type OutputManager struct {
	dir string

	shipFile        *os.File
	storageBaseFile *os.File
	supplyBaseFile  *os.File
	support1File    *os.File
	support2File    *os.File

	// Track if headers have been written
	shipHeaderWritten        bool
	storageBaseHeaderWritten bool
	supplyBaseHeaderWritten  bool
	support1HeaderWritten    bool
	support2HeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if out.Dir is empty (output disabled).
func NewOutputManager(out config.OutputConfig) (*OutputManager, error) {
	if out.Dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: out.Dir}

	open := func(name, fallback string) (*os.File, error) {
		if name == "" {
			name = fallback
		}
		f, err := os.Create(filepath.Join(out.Dir, name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", name, err)
		}
		return f, nil
	}

	var err error
	if om.shipFile, err = open(out.ShipLog, "tpg_ship.csv"); err != nil {
		return nil, err
	}
	if om.storageBaseFile, err = open(out.StorageBaseLog, "storage_base.csv"); err != nil {
		return nil, err
	}
	if om.supplyBaseFile, err = open(out.SupplyBaseLog, "supply_base.csv"); err != nil {
		return nil, err
	}
	if om.support1File, err = open(out.SupportLog1, "support_ship_1.csv"); err != nil {
		return nil, err
	}
	if om.support2File, err = open(out.SupportLog2, "support_ship_2.csv"); err != nil {
		return nil, err
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

func writeRow[T any](f *os.File, headerWritten *bool, rec T, what string) error {
	records := []T{rec}

	if !*headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, f); err != nil {
			return fmt.Errorf("writing %s: %w", what, err)
		}
		*headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", what, err)
	}
	return nil
}

// WriteShip writes a generation ship record to tpg_ship.csv.
func (om *OutputManager) WriteShip(rec ShipRecord) error {
	if om == nil {
		return nil
	}
	return writeRow(om.shipFile, &om.shipHeaderWritten, rec, "ship log")
}

// WriteStorageBase writes a storage base record to storage_base.csv.
func (om *OutputManager) WriteStorageBase(rec BaseRecord) error {
	if om == nil {
		return nil
	}
	return writeRow(om.storageBaseFile, &om.storageBaseHeaderWritten, rec, "storage base log")
}

// WriteSupplyBase writes a supply base record to supply_base.csv.
func (om *OutputManager) WriteSupplyBase(rec BaseRecord) error {
	if om == nil {
		return nil
	}
	return writeRow(om.supplyBaseFile, &om.supplyBaseHeaderWritten, rec, "supply base log")
}

// WriteSupport writes a support shuttle record to support_ship_<n>.csv.
// n is 1 or 2.
func (om *OutputManager) WriteSupport(n int, rec SupportRecord) error {
	if om == nil {
		return nil
	}
	if n == 1 {
		return writeRow(om.support1File, &om.support1HeaderWritten, rec, "support ship 1 log")
	}
	return writeRow(om.support2File, &om.support2HeaderWritten, rec, "support ship 2 log")
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.shipFile, om.storageBaseFile, om.supplyBaseFile, om.support1File, om.support2File} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
