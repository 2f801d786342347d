// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const appDir = "echoverse"

// Paths holds all application path configurations.
type Paths struct {
	configFileName string
	boltFileName   string
	sqliteFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	boltFilePath   string
	sqliteFilePath string
	logFilePath    string
	recordingsDir  string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths, initErr = New()
	})

	return initErr
}

// New computes the paths from the XDG base directories and ECHOVERSE_ENV.
func New() (*Paths, error) {
	p := &Paths{
		configFileName: "config.yml",
		boltFileName:   "echoverse.db",
		sqliteFileName: "echoverse.sqlite",
		logFileName:    "echoverse.log",
	}

	p.applyEnvironmentOverrides()

	if err := p.computePaths(); err != nil {
		return nil, err
	}

	return p, nil
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func Dir() string {
	return appDir
}

func (p *Paths) ConfigFilePath() string {
	return p.configFilePath
}

// DBFilePath returns the database file for a storage backend.
func (p *Paths) DBFilePath(backend string) string {
	if backend == "sqlite" {
		return p.sqliteFilePath
	}

	return p.boltFilePath
}

func (p *Paths) LogFilePath() string {
	return p.logFilePath
}

// RecordingsDir is where finished recordings are kept.
func (p *Paths) RecordingsDir() string {
	return p.recordingsDir
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv("ECHOVERSE_ENV"))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.boltFileName = fmt.Sprintf("echoverse_%s.db", env)
		p.sqliteFileName = fmt.Sprintf("echoverse_%s.sqlite", env)
		p.logFileName = fmt.Sprintf("echoverse_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(appDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	dataDir, err := xdg.DataFile(appDir)
	if err != nil {
		return err
	}

	p.boltFilePath = filepath.Join(dataDir, p.boltFileName)

	p.sqliteFilePath = filepath.Join(dataDir, p.sqliteFileName)

	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	p.recordingsDir = filepath.Join(dataDir, "recordings")

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
