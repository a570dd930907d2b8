// Package configs manages keyseal's user configuration.
//
// Configuration is stored in TOML format at <user config dir>/keyseal/config.toml,
// or wherever KEYSEAL_CONFIG points:
//
//	artifact_path  = "plantid_key.enc"
//	passphrase_env = "PLANT_ID_PASSPHRASE"
//	kdf            = "pbkdf2-sha256"
//	iterations     = 0
//
// A missing file means defaults. iterations = 0 selects the default work
// factor of the chosen KDF. The config only affects new encryptions and
// where commands look by default; artifacts record their own KDF parameters.
package configs
