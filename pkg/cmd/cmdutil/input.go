package cmdutil

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/techalysis/techalysis/pkg/binding"
	"github.com/techalysis/techalysis/pkg/config"
	"github.com/techalysis/techalysis/pkg/datasource/csvsource"
	"github.com/techalysis/techalysis/pkg/datatype/floats"
)

// ReadInput reads a csv price file. Missing columns are left nil, the
// indicator reports the ones it needs.
func ReadInput(r io.Reader, mapping config.ColumnMapping) (binding.Input, error) {
	mapping = mapping.WithDefaults()

	cols, err := csvsource.ReadColumns(r)
	if err != nil {
		return binding.Input{}, err
	}

	var in binding.Input
	for _, c := range []struct {
		name   string
		target *floats.Slice
	}{
		{mapping.Close, &in.Close},
		{mapping.High, &in.High},
		{mapping.Low, &in.Low},
	} {
		if !cols.Has(c.name) {
			log.Debugf("input has no %q column", c.name)
			continue
		}

		values, err := cols.Column(c.name)
		if err != nil {
			return binding.Input{}, err
		}
		if i := floats.AllFinite(values); i >= 0 {
			log.Warnf("column %q has a non-finite value at row %d, indicators will reject it", c.name, i+1)
		}
		*c.target = values
	}

	log.Debugf("loaded %d samples", in.Len())
	return in, nil
}

func ReadInputFile(path string, mapping config.ColumnMapping) (binding.Input, error) {
	if path == "-" {
		return ReadInput(os.Stdin, mapping)
	}

	f, err := os.Open(path)
	if err != nil {
		return binding.Input{}, err
	}
	defer f.Close()

	in, err := ReadInput(f, mapping)
	return in, errors.Wrapf(err, "read %s", path)
}

// InputFromConfig loads the series selected by InputFlags. The values come
// through viper, so the config file and TECHALYSIS_ env vars apply too.
func InputFromConfig() (binding.Input, error) {
	path := viper.GetString("input")
	if path == "" {
		return binding.Input{}, errors.New("--input is required")
	}

	return ReadInputFile(path, config.ColumnMapping{
		Close: viper.GetString("close-column"),
		High:  viper.GetString("high-column"),
		Low:   viper.GetString("low-column"),
	})
}
