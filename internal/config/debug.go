package config

import "os"

func IsDebug() bool {
	return os.Getenv("ASKFOLIO_DEBUG") == "1"
}
