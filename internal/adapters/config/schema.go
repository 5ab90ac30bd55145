package config

// Scifile represents the structure of the sci.yaml configuration file.
type Scifile struct {
	Version       string `yaml:"version"`
	Shell         string `yaml:"shell"`
	MergeUpstream *bool  `yaml:"merge_upstream"`
	LockTimeout   string `yaml:"lock_timeout"`
	StagingPrefix string `yaml:"staging_prefix"`
}
