package v1alpha1

// Encryption backends selectable with the `encryption` config key.
const (
	EncryptionGPG     = "gpg"
	EncryptionOpenPGP = "openpgp"
	EncryptionAge     = "age"
)

// Config is the resolved `[gist]` section of the configuration file.
type Config struct {
	// Token authorizes API calls. After resolution it never carries the `!` prefix.
	Token string `mapstructure:"token"`
	// Editor is the command used for `edit` and editor-composed `create`.
	Editor string `mapstructure:"editor"`
	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log-level"`
	// DeleteTempfiles controls removal of working copies after use.
	DeleteTempfiles bool `mapstructure:"delete-tempfiles"`
	// APIURL overrides the GitHub REST base URL (GitHub Enterprise).
	APIURL string `mapstructure:"api-url"`

	// Encryption selects the cipher backend: gpg, openpgp or age.
	Encryption       string   `mapstructure:"encryption"`
	GnupgCommand     string   `mapstructure:"gnupg-command"`
	GnupgHomedir     string   `mapstructure:"gnupg-homedir"`
	GnupgFingerprint string   `mapstructure:"gnupg-fingerprint"`
	AgeRecipients    []string `mapstructure:"age-recipients"`
	AgeIdentity      string   `mapstructure:"age-identity"`

	// Path is the config file the values were read from.
	Path string `mapstructure:"-"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		DeleteTempfiles: true,
		LogLevel:        "error",
		Encryption:      EncryptionGPG,
		GnupgCommand:    "gpg",
	}
}

// EncryptionConfigured reports whether enough settings exist to build a cipher.
func (c *Config) EncryptionConfigured() bool {
	switch c.Encryption {
	case EncryptionAge:
		return len(c.AgeRecipients) > 0 || c.AgeIdentity != ""
	default:
		return c.GnupgHomedir != ""
	}
}
