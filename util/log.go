package util
import (
	"os"
	"sync"
	"time"

	"github.com/neema-sll/Steganography-Tool/cryptography"
)

/*
 * a custom logger. every operation of the tool leaves a line here in
 * addition to the audit database, and the log file can optionally be
 * kept encrypted at rest.
 */
const (
	Error = 1
	Warning = 2
	Info = 4

	RedColor = "\033[31m"
	YellowColor = "\033[33m"
	CyanColor = "\033[36m"
	ResetColor = "\033[0m"
)

type LoggerInfo struct {
	Filename	string	`yaml:"filename"`
	IsEncrypted	bool	`yaml:"is_encrypted"`
	IsColored	bool	`yaml:"is_colored"`
	SaveTime	bool	`yaml:"save_time"`
	Mode		uint8	`yaml:"mode"`
}

type Logger struct {
	li	*LoggerInfo
	key	[]byte	// nil unless the log file is encrypted at rest
	mtx	sync.Mutex
}

func NewLogger( li *LoggerInfo ) *Logger {
	return &Logger{ li: li }
}

// NewEncryptedLogger keeps the log file chacha20poly1305-encrypted,
// re-sealing the whole file on every line. slow, but log volume here
// is a handful of lines per run.
func NewEncryptedLogger( li *LoggerInfo, key []byte ) *Logger {
	return &Logger{ li: li, key: key }
}

func (l *Logger) colorize( line, color string ) string {
	if l.li.IsColored {
		return color + line + ResetColor
	}
	return line
}

func (l *Logger) prepareString( str, clr string ) string {
	toWrite := l.colorize( str, clr ) + " "
	if l.li.SaveTime {
		toWrite += time.Now().Format( time.RFC3339 ) + " "
	}
	return toWrite
}

func (l *Logger) LogString( s string ) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if !l.li.IsEncrypted || len(l.key) != cryptography.SymKeySize {
		// just append the line
		f, err := os.OpenFile( l.li.Filename, os.O_APPEND | os.O_CREATE | os.O_WRONLY, 0600 )
		if err == nil {
			defer f.Close()
			f.WriteString( s + "\n" )
		}
		return
	}

	// decrypt the current log, append, seal it back
	current := []byte{}
	if data, err := os.ReadFile( l.li.Filename ); err == nil {
		if pt, err := cryptography.Decrypt( data, l.key ); err == nil {
			current = pt
		}
	}
	current = append( current, []byte(s + "\n")... )
	if sealed, err := cryptography.Encrypt( current, l.key ); err == nil {
		os.WriteFile( l.li.Filename, sealed, 0600 )
	}
}

func (l *Logger) LogError( err error ) {
	if l.li.Mode & Error == Error {
		l.LogString( l.prepareString( "[ERROR]", RedColor ) + err.Error() )
	}
}

func (l *Logger) LogWarning( warning string ) {
	if l.li.Mode & Warning == Warning {
		l.LogString( l.prepareString( "[WARNING]", YellowColor ) + warning )
	}
}

func (l *Logger) LogInfo( info string ) {
	if l.li.Mode & Info == Info {
		l.LogString( l.prepareString( "[INFO]", CyanColor ) + info )
	}
}
