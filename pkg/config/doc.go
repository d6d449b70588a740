// Package config holds the settings of a hyraft application and loads them
// through viper.
//
// Sources are merged in this order, later ones winning:
//
//  1. Defaults from Default.
//  2. An optional YAML file (hyraft.yaml in the working directory unless
//     WithFile names one).
//  3. Environment variables with the HYRAFT_ prefix, dots replaced by
//     underscores: HYRAFT_SERVER_ADDRESS, HYRAFT_CACHE_BACKEND.
//  4. Flags bound on the viper instance passed with WithViper.
//
//	v := viper.New()
//	_ = v.BindPFlag("server.address", cmd.Flags().Lookup("addr"))
//	cfg, err := config.Load(config.WithViper(v), config.WithFile(path))
package config
