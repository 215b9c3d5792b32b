// Package config provides configuration management for the meshkit CLI.
//
// # Configuration File
//
// Viper searches for config.yaml in the current directory and then in
// $XDG_CONFIG_HOME/meshkit. Every key has a default, so the file is
// optional:
//
//	version: 1
//	export:
//	  include_animations: true
//	  include_textures: true
//	  each: false
//	  path: //export        # "//" is the scene's project directory
//	  file_name: level
//	  extension: fbx
//	  command: [blender, -b, "{source}", --python, fbx_export.py, --, "{output}", "{objects}"]
//	lod:
//	  count: 3
//	  decimate_type: collapse
//	  decimate_step: 0.3
//	rename:
//	  mode: prefix_prefix
//	  target: object
//	backup:
//	  enabled: true
//	  retention: 10
//
// Environment variables override the file: MESHKIT_LOD_COUNT=5 sets
// lod.count. Command-line flags override both.
//
// # Validation
//
// [Load] validates automatically and wraps failures in
// errors.ErrInvalidConfig. [Validate] returns one [FieldError] per bad key.
package config
