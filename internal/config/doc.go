// Package config loads Mosaic's gallery configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/mosaic/config.toml
//  3. If the file doesn't exist, use Default()
//  4. Fields that are absent or blank keep their defaults
//  5. MOSAIC_SEED, when set, replaces the seed
//
// # TOML Format
//
//	seed = "mosaic"
//	batch_size = 12
//	overscan = 0
//	padding_top = 0
//	padding_bottom = 1
//	estimated_row_height = 12
//	max_safe_offset = 16777200
//	thumbnail_neighbors = 15
//	history_debounce = "300ms"
//	inline_images = false
//	log_path = "~/.local/state/mosaic/mosaic.log"
//
//	[breakpoints]
//	sm = 64
//	md = 80
//	lg = 100
//	xl = 128
//	2xl = 154
//
// Offsets, padding and row heights are in terminal lines; breakpoints are in
// cells.
//
// # Seed
//
// The seed parameterises every generated item. A different seed is a
// different gallery, so it is read once at startup and never reloaded.
//
// # Validation
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors, including an unparsable history_debounce
//   - Values rejected by Config.Validate (non-positive batch size, row
//     estimate or offset cap, negative padding, unordered breakpoints)
//
// Missing config files are not an error.
package config
