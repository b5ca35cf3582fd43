// Package config provides configuration structures and utilities for
// offlist. It defines scan behavior defaults, the profile/config file
// format, and validation performed once at startup.
package config
