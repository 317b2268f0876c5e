// Package config loads runtime configuration for the userboarding CLI.
//
// Sources, later ones winning: built-in defaults, an optional JSON file
// selected with -c or -config, then the -a and -t flags.
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
package config
