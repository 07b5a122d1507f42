package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-x", "1"},
			allowed: []string{"c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "double dash with equals",
			args:    []string{"--store=redis", "list"},
			allowed: []string{"store"},
			want:    []string{"--store=redis"},
		},
		{
			name:    "allowed list may carry dashes",
			args:    []string{"--store", "memory"},
			allowed: []string{"-store"},
			want:    []string{"--store", "memory"},
		},
		{
			name:    "positional arguments and subcommands are dropped",
			args:    []string{"show", "sj1", "-s", "memory", "extra"},
			allowed: []string{"s"},
			want:    []string{"-s", "memory"},
		},
		{
			name:    "next flag is not consumed as a value",
			args:    []string{"-c", "-s", "memory"},
			allowed: []string{"c"},
			want:    []string{"-c"},
		},
		{
			name:    "flag at the end keeps no value",
			args:    []string{"-c"},
			allowed: []string{"c"},
			want:    []string{"-c"},
		},
		{
			name:    "repeated flags preserved in order",
			args:    []string{"-c", "one.json", "--c=two.json"},
			allowed: []string{"c"},
			want:    []string{"-c", "one.json", "--c=two.json"},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"c"},
			want:    []string{},
		},
		{
			name:    "terminator is ignored",
			args:    []string{"--", "-c", "x"},
			allowed: []string{"c"},
			want:    []string{"-c", "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "/etc/qj.json", ConfigFileFlag([]string{"-c", "/etc/qj.json"}))
	assert.Equal(t, "qj.yaml", ConfigFileFlag([]string{"list", "--config=qj.yaml"}))
	assert.Equal(t, "2.json", ConfigFileFlag([]string{"-c", "1.json", "-config", "2.json"}))
	assert.Empty(t, ConfigFileFlag([]string{"-s", "memory"}))
}

func TestStripArgs(t *testing.T) {
	names := []string{"s", "store", "c"}

	assert.Equal(t, []string{"show", "sj1"}, StripArgs([]string{"-s", "memory", "show", "sj1"}, names))
	assert.Equal(t, []string{"list", "--sort", "oldest"}, StripArgs([]string{"list", "--store=redis", "--sort", "oldest"}, names))
	assert.Equal(t, []string{"--link", "job=sj1"}, StripArgs([]string{"-c", "qj.json", "--link", "job=sj1"}, names))
	assert.Equal(t, []string{}, StripArgs(nil, names))
}
