package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host     string   `koanf:"host"`
	Server   Server   `koanf:"server"`
	Storage  Storage  `koanf:"storage"`
	Document Document `koanf:"document"`
	Database Database `koanf:"db"`
}

type Server struct {
	Addr string `koanf:"addr"`
}

type Storage struct {
	// Path is the directory where user uploaded files (avatars) are kept.
	Path string `koanf:"path"`
}

// Document holds the printable page metrics used by the proposal paginator.
// Defaults correspond to an A4 page rendered at 96 DPI with 40px margins.
type Document struct {
	PageHeight      float64 `koanf:"pageheight"`
	MarginTop       float64 `koanf:"margintop"`
	MarginBottom    float64 `koanf:"marginbottom"`
	BlockMargin     float64 `koanf:"blockmargin"`
	LineHeight      float64 `koanf:"lineheight"`
	CharsPerLine    int     `koanf:"charsperline"`
	DefaultValidity int     `koanf:"defaultvalidity"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Server: Server{
			Addr: ":8282",
		},
		Storage: Storage{
			Path: "storage",
		},
		Document: Document{
			PageHeight:      1122,
			MarginTop:       40,
			MarginBottom:    40,
			BlockMargin:     20,
			LineHeight:      22,
			CharsPerLine:    90,
			DefaultValidity: 15,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "eletroproposta",
			Pass:   "",
			Name:   "eletroproposta",
			Schema: "eletroproposta",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "ELETROPROPOSTA_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "ELETROPROPOSTA_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
