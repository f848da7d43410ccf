package main
import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/neema-sll/Steganography-Tool/config"
	"github.com/neema-sll/Steganography-Tool/cryptography"
	"github.com/neema-sll/Steganography-Tool/stegano"
	"github.com/neema-sll/Steganography-Tool/util"
)

const (
	AppFolder = ".stegtool"
	ConfigFilename = "config.yaml"
	SaltFilename = "salt.bin"
)

type App struct {
	conf	*config.FullConfig
	logger	*util.Logger
	db	*util.DB
	folder	string
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fatal("Failed to get home directory:", err)
	}
	appFolder := filepath.Join( home, AppFolder )
	if err = os.MkdirAll( appFolder, 0760 ); err != nil {
		fatal("Failed to create application folder:", err)
	}

	// the only command which does not need config or database
	if os.Args[1] == "gensalt" {
		if err = genSalt( appFolder ); err != nil {
			fatal("Failed to generate salt:", err)
		}
		return
	}

	conf, err := loadOrCreateConfig( appFolder )
	if err != nil {
		fatal("Failed to load configuration:", err)
	}

	app := &App{
		conf: conf,
		logger: util.NewLogger( &conf.Logger ),
		folder: appFolder,
	}
	app.db, err = util.ConnectDB( conf.DbFile, conf.DbPassword, conf.DbRowsLimit )
	if err != nil {
		fatal("Failed to open audit database:", err)
	}
	defer app.db.Close()
	if err = app.db.InitDB(); err != nil {
		fatal("Failed to initialize audit database:", err)
	}
	sessionID, err := app.db.StartSession( runtime.GOOS )
	if err == nil {
		defer app.db.EndSession( sessionID )
	}

	switch os.Args[1] {
	case "embed":
		err = app.embed( os.Args[2:] )
	case "extract":
		err = app.extract( os.Args[2:] )
	case "capacity":
		err = app.capacity( os.Args[2:] )
	case "history":
		err = app.history( os.Args[2:] )
	case "testimage":
		err = app.testImage( os.Args[2:] )
	default:
		help()
		return
	}
	if err != nil {
		app.logger.LogError( err )
		fatal("Error:", err)
	}
}

func (a *App) embed( args []string ) error {
	fs := flag.NewFlagSet( "embed", flag.ExitOnError )
	cover := fs.String( "in", "", "cover image path" )
	output := fs.String( "out", "", "output stego image path (default stego_<timestamp>.png)" )
	text := fs.String( "text", "", "secret text to hide" )
	file := fs.String( "file", "", "file with secret data to hide" )
	bits := fs.Int( "bits", a.conf.Engine.BitsPerPixel, "low bits per sample to use (1-3)" )
	noCompress := fs.Bool( "nocompress", !a.conf.Engine.UseCompression, "disable the compression stage" )
	encrypt := fs.Bool( "encrypt", false, "encrypt the secret with a password before embedding" )
	passphrase := fs.String( "passphrase", "", "non-interactive key in <base64-salt>:<password> form" )
	fs.Parse( args )

	if *cover == "" {
		return fmt.Errorf("no cover image given, use -in")
	}
	if _, err := util.ValidateImageFile( *cover ); err != nil {
		return err
	}
	var secret []byte
	switch {
	case *text != "":
		secret = []byte( *text )
	case *file != "":
		data, err := os.ReadFile( *file )
		if err != nil {
			return fmt.Errorf("failed to read secret file: %w", err)
		}
		secret = data
	default:
		return fmt.Errorf("no secret data given, use -text or -file")
	}

	if *passphrase != "" {
		*encrypt = true
	}
	if *encrypt {
		key, err := a.deriveKey( *passphrase )
		if err != nil {
			return err
		}
		secret, err = cryptography.Encrypt( secret, key )
		if err != nil {
			return err
		}
	}

	outPath := *output
	if outPath == "" {
		name := "stego_" + time.Now().Format("20060102_150405") + ".png"
		outPath = filepath.Join( a.conf.Engine.OutputFolder, name )
	}

	result, err := stegano.Embed( *cover, secret, outPath, *bits, !*noCompress )
	a.logOperation( "embed", *cover, outPath, int64(len(secret)), *encrypt, err, map[string]string{
		"bits_per_pixel": fmt.Sprint( *bits ),
		"compression": fmt.Sprint( !*noCompress ),
	} )
	if err != nil {
		return err
	}
	a.db.RecordFileHash( outPath )
	a.logger.LogInfo( "embedded " + fmt.Sprint(result.EmbeddedSize) + " bytes into " + outPath )
	fmt.Println( result.Summary() )
	return nil
}

func (a *App) extract( args []string ) error {
	fs := flag.NewFlagSet( "extract", flag.ExitOnError )
	stego := fs.String( "in", "", "stego image path" )
	output := fs.String( "out", "", "file to write recovered data to (default stdout)" )
	bits := fs.Int( "bits", a.conf.Engine.BitsPerPixel, "low bits per sample used at embedding time (1-3)" )
	decrypt := fs.Bool( "decrypt", false, "decrypt the recovered data with a password" )
	passphrase := fs.String( "passphrase", "", "non-interactive key in <base64-salt>:<password> form" )
	fs.Parse( args )

	if *stego == "" {
		return fmt.Errorf("no stego image given, use -in")
	}
	if _, err := util.ValidateImageFile( *stego ); err != nil {
		return err
	}
	if *passphrase != "" {
		*decrypt = true
	}

	result, err := stegano.Extract( *stego, *bits )
	size := int64(0)
	if result != nil {
		size = int64(len(result.Data))
	}
	a.logOperation( "extract", *stego, *output, size, *decrypt, err, map[string]string{
		"bits_per_pixel": fmt.Sprint( *bits ),
	} )
	if err != nil {
		return err
	}

	data := result.Data
	if *decrypt {
		key, err := a.deriveKey( *passphrase )
		if err != nil {
			return err
		}
		data, err = cryptography.Decrypt( data, key )
		if err != nil {
			return fmt.Errorf("decryption failed, wrong password? %w", err)
		}
	}

	if *output != "" {
		if err := os.WriteFile( *output, data, 0660 ); err != nil {
			return err
		}
		fmt.Println( result.Summary() )
	} else {
		os.Stdout.Write( data )
		fmt.Println()
	}
	return nil
}

func (a *App) capacity( args []string ) error {
	fs := flag.NewFlagSet( "capacity", flag.ExitOnError )
	in := fs.String( "in", "", "image path" )
	bits := fs.Int( "bits", a.conf.Engine.BitsPerPixel, "low bits per sample to use (1-3)" )
	fs.Parse( args )

	if *in == "" {
		return fmt.Errorf("no image given, use -in")
	}
	report, err := stegano.Capacity( *in, *bits )
	if err != nil {
		return err
	}
	fmt.Println( report.Summary() )
	return nil
}

func (a *App) history( args []string ) error {
	fs := flag.NewFlagSet( "history", flag.ExitOnError )
	limit := fs.Int( "limit", 20, "how many recent operations to show" )
	fs.Parse( args )

	ops, err := a.db.History( *limit )
	if err != nil {
		return err
	}
	for _, op := range ops {
		status := "ok"
		if !op.Success {
			status = "FAILED: " + op.ErrorMessage
		}
		fmt.Printf("%s  %-7s  %8d bytes  %s -> %s  [%s]\n",
			op.Timestamp.Format("2006-01-02 15:04:05"),
			op.Type, op.DataSize, op.InputFile, op.OutputFile, status)
	}
	stats, err := a.db.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("\nTotal: %d operations (%d embeds, %d extracts, %d failures), %d bytes moved\n",
		stats.TotalOperations, stats.Embeds, stats.Extracts,
		stats.Failures, stats.TotalBytes)
	return nil
}

func (a *App) testImage( args []string ) error {
	fs := flag.NewFlagSet( "testimage", flag.ExitOnError )
	out := fs.String( "out", "test_cover.png", "where to write the generated image" )
	width := fs.Int( "width", 512, "image width" )
	height := fs.Int( "height", 512, "image height" )
	fs.Parse( args )

	if err := util.CreateTestImage( *out, *width, *height ); err != nil {
		return err
	}
	fmt.Println("Generated test cover image:", *out)
	return nil
}

func (a *App) logOperation( opType, input, output string, size int64, encrypted bool, opErr error, meta map[string]string ) {
	record := &util.OperationRecord{
		Type: opType,
		InputFile: input,
		OutputFile: output,
		DataSize: size,
		EncryptionUsed: encrypted,
		Success: opErr == nil,
		Metadata: meta,
	}
	if opErr != nil {
		record.ErrorMessage = opErr.Error()
	}
	if err := a.db.LogOperation( record ); err != nil {
		a.logger.LogWarning( "failed to log operation: " + err.Error() )
	}
}

// deriveKey turns a passphrase into the payload key. a non-empty
// passphrase carries its own salt inline in the
// <base64-salt>:<password> form and skips the terminal prompt.
func (a *App) deriveKey( passphrase string ) ([]byte, error) {
	if passphrase != "" {
		password, salt, err := cryptography.SplitWithSalt( passphrase )
		if err != nil {
			return nil, fmt.Errorf("bad passphrase: %w", err)
		}
		return cryptography.DeriveKey( password, salt ), nil
	}
	return a.deriveKeyFromPrompt()
}

// deriveKeyFromPrompt reads the password from the terminal and derives
// the payload key with the per-install salt.
func (a *App) deriveKeyFromPrompt() ([]byte, error) {
	salt, err := getSalt( a.folder )
	if err != nil {
		return nil, fmt.Errorf("failed to get salt bytes: %w", err)
	}
	password, err := util.GetPasswd("Password: ")
	if err != nil {
		return nil, fmt.Errorf("failed to read password from stdin: %w", err)
	}
	return cryptography.DeriveKey( password, salt ), nil
}

func getSalt( appFolder string ) ([]byte, error) {
	saltFile := filepath.Join( appFolder, SaltFilename )
	salt, err := os.ReadFile( saltFile )
	if err != nil {
		salt, err = cryptography.GenRandom( cryptography.SaltSize )
		if err != nil {
			return nil, err
		}
		if err = os.WriteFile( saltFile, salt, 0660 ); err != nil {
			return nil, err
		}
	}
	return salt, nil
}

func genSalt( appFolder string ) error {
	saltFile := filepath.Join( appFolder, SaltFilename )
	salt, err := cryptography.GenRandom( cryptography.SaltSize )
	if err != nil {
		return err
	}
	if err = os.WriteFile( saltFile, salt, 0660 ); err != nil {
		return err
	}
	fmt.Println("[+] Generated new salt at", saltFile)
	return nil
}

func loadOrCreateConfig( appFolder string ) (*config.FullConfig, error) {
	configFile := filepath.Join( appFolder, ConfigFilename )
	if _, err := os.Stat( configFile ); err != nil {
		conf := config.DefaultConfig( appFolder )
		if err = config.SaveConfig( configFile, nil, conf ); err != nil {
			return nil, err
		}
		return conf, nil
	}
	return config.LoadConfig( configFile, nil )
}

func fatal( msg string, err error ) {
	fmt.Fprintln( os.Stderr, msg, err )
	os.Exit( 1 )
}

func help() {
	fmt.Println(`Steganography-Tool - hide data in the low bits of images.

Usage: stegtool <command> [flags]

Commands:
	embed     hide data inside a cover image (-in, -text/-file, -out, -bits, -encrypt, -passphrase, -nocompress)
	extract   recover hidden data from a stego image (-in, -out, -bits, -decrypt, -passphrase)
	capacity  report how much data an image can carry (-in, -bits)
	history   show recent operations from the audit database (-limit)
	testimage generate a gradient PNG to play with (-out, -width, -height)
	gensalt   regenerate the key derivation salt

The output image is always written as PNG: a lossy format would destroy
the embedded bits.`)
}
