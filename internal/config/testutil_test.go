package config

import "github.com/spf13/afero"

func newMemFS() afero.Fs { return afero.NewMemMapFs() }
func realFS() afero.Fs   { return afero.NewOsFs() }
