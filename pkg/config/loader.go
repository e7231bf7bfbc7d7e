package config

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/techalysis/techalysis/pkg/binding"
)

// ColumnMapping names the CSV columns read as close, high and low.
type ColumnMapping struct {
	Close string `json:"close,omitempty" yaml:"close,omitempty"`
	High  string `json:"high,omitempty" yaml:"high,omitempty"`
	Low   string `json:"low,omitempty" yaml:"low,omitempty"`
}

func (m ColumnMapping) WithDefaults() ColumnMapping {
	if m.Close == "" {
		m.Close = "close"
	}
	if m.High == "" {
		m.High = "high"
	}
	if m.Low == "" {
		m.Low = "low"
	}
	return m
}

// Job runs one indicator. Columns limits the written output columns.
type Job struct {
	Name      string
	Indicator string
	Params    binding.Params
	Columns   StringSlice
}

type Config struct {
	Input     string
	Columns   ColumnMapping
	OutputDir string
	Jobs      []Job
}

type Stash map[string]interface{}

func loadStash(configFile string) (Stash, error) {
	config, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	stash := make(Stash)
	if err := yaml.Unmarshal(config, stash); err != nil {
		return nil, err
	}

	return stash, err
}

// Load reads a jobs file:
//
//	input: prices.csv
//	outputDir: out
//	jobs:
//	- sma: { period: 5 }
//	  name: sma5
//	- macd: {}
//	  columns: [signal]
func Load(configFile string) (*Config, error) {
	stash, err := loadStash(configFile)
	if err != nil {
		return nil, err
	}

	var config Config
	if v, ok := stash["input"].(string); ok {
		config.Input = v
	}
	if v, ok := stash["outputDir"].(string); ok {
		config.OutputDir = v
	}
	if conf, ok := stash["columns"]; ok {
		if err := reUnmarshal(conf, &config.Columns); err != nil {
			return nil, err
		}
	}
	config.Columns = config.Columns.WithDefaults()

	jobs, err := loadJobs(stash)
	if err != nil {
		return nil, err
	}
	config.Jobs = jobs

	return &config, nil
}

func loadJobs(stash Stash) (jobs []Job, err error) {
	jobsConf, ok := stash["jobs"]
	if !ok {
		return nil, errors.New("jobs is required")
	}

	configList, ok := jobsConf.([]interface{})
	if !ok {
		return nil, errors.New("expecting list in jobs")
	}

	for i, entry := range configList {
		var configStash Stash
		switch v := entry.(type) {
		case Stash:
			configStash = v
		case map[string]interface{}:
			configStash = v
		default:
			return nil, errors.Errorf("job config should be a map, given: %T %+v", entry, entry)
		}

		var job Job
		if val, ok := configStash["name"].(string); ok {
			job.Name = val
		}
		if val, ok := configStash["columns"]; ok {
			if err := job.Columns.decode(val); err != nil {
				return nil, errors.Wrapf(err, "job %d columns", i)
			}
		}

		// the indicator is the one key that is not a job option
		var ids []string
		for id := range configStash {
			if id != "name" && id != "columns" {
				ids = append(ids, id)
			}
		}
		sort.Strings(ids)

		if len(ids) != 1 {
			return nil, errors.Errorf("job %d should name exactly one indicator, given: %v", i, ids)
		}

		ind, err := binding.Lookup(ids[0])
		if err != nil {
			return nil, errors.Wrapf(err, "job %d", i)
		}
		job.Indicator = ind.Name

		if conf := configStash[ids[0]]; conf != nil {
			if err := reUnmarshal(conf, &job.Params); err != nil {
				return nil, errors.Wrapf(err, "job %d %s", i, ind.Name)
			}
		}

		for _, col := range job.Columns {
			if !contains(ind.Columns, col) {
				return nil, errors.Errorf("job %d: %s has no column %q", i, ind.Name, col)
			}
		}

		if job.Name == "" {
			job.Name = ind.Name
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// reUnmarshal round-trips a decoded yaml value through json into target.
func reUnmarshal(conf interface{}, target interface{}) error {
	plain, err := json.Marshal(conf)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(plain, target); err != nil {
		return errors.Wrapf(err, "json parsing error, given payload: %s", plain)
	}

	return nil
}
