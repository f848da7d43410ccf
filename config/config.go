package config
import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/neema-sll/Steganography-Tool/cryptography"
	"github.com/neema-sll/Steganography-Tool/util"
)

// defaults applied to the embedding engine when flags do not say
// otherwise
type EngineConfig struct {
	BitsPerPixel	int	`yaml:"bits_per_pixel"`
	UseCompression	bool	`yaml:"use_compression"`
	OutputFolder	string	`yaml:"output_folder"`
}

/*
 * full configuration of the tool: engine defaults, logging, and the
 * audit database. stored as YAML, optionally encrypted at rest with a
 * key derived from the user's password.
 */
type FullConfig struct {
	Engine		EngineConfig	`yaml:"engine"`
	Logger		util.LoggerInfo	`yaml:"logger_config"`
	DbFile		string	`yaml:"db_file"`
	DbPassword	string	`yaml:"db_password"`
	DbRowsLimit	uint	`yaml:"db_rows_limit"`
}

func DefaultConfig( appFolder string ) *FullConfig {
	return &FullConfig{
		Engine: EngineConfig{
			BitsPerPixel: 1,
			UseCompression: true,
			OutputFolder: ".",
		},
		Logger: util.LoggerInfo{
			Filename: filepath.Join( appFolder, "log.log" ),
			IsEncrypted: false,
			IsColored: true,
			SaveTime: true,
			Mode: util.Error | util.Warning,
		},
		DbFile: filepath.Join( appFolder, "audit.db" ),
		DbPassword: util.GenID(),
		DbRowsLimit: 10000,
	}
}

/*
 * functions for loading and saving configuration in YAML format.
 */
func LoadConfig( filename string, key []byte ) (*FullConfig, error) {
	data, err := LoadEncrypted( filename, key )
	if err != nil {
		return nil, err
	}
	var conf FullConfig
	if err := yaml.Unmarshal( data, &conf ); err != nil {
		return nil, err
	}
	return &conf, nil
}

func SaveConfig( filename string, key []byte, c *FullConfig ) error {
	data, err := yaml.Marshal( *c )
	if err != nil {
		return err
	}
	return SaveEncrypted( filename, key, data )
}

/*
 * functions for saving and loading encrypted files. a nil or
 * wrong-sized key means the file is handled as plaintext.
 */
func LoadEncrypted( filename string, key []byte ) ([]byte, error) {
	data, err := os.ReadFile( filename )
	if err != nil {
		return nil, err
	}
	if len(key) == cryptography.SymKeySize {
		return cryptography.Decrypt( data, key )
	}
	return data, nil
}

func SaveEncrypted( filename string, key, data []byte ) error {
	var err error
	if len(key) == cryptography.SymKeySize {
		data, err = cryptography.Encrypt( data, key )
		if err != nil {
			return err
		}
	}
	return os.WriteFile( filename, data, 0600 )
}
