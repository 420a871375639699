package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/pixmap"
	"github.com/bodgit/pixmap/ansi"
	"github.com/bodgit/pixmap/config"
	"github.com/bodgit/pixmap/ppm"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadConfig reads the configuration file if there is one, global flags
// override whatever it contains.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.DefaultConfig()

	path := c.String("config")
	if config.Exists(path) {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	} else if c.IsSet("config") {
		return nil, fmt.Errorf("config file %s does not exist", path)
	}

	if c.IsSet("db") {
		cfg.Database = c.String("db")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}

	return cfg, cfg.Validate()
}

func openPixmap(c *cli.Context) (*pixmap.Pixmap, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	catalog, err := pixmap.NewCatalog(cfg.Database, cfg.Preview.Size)
	if err != nil {
		return nil, err
	}

	return pixmap.New(catalog, newLogger(c), cfg.Workers), nil
}

func isPPM(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".ppm", ".pnm":
		return true
	}
	return false
}

// readImage decodes any registered image format. PPM files are decoded
// directly as image.Decode cannot sniff a header that starts with a comment.
func readImage(file string) (image.Image, error) {
	if isPPM(file) {
		return ppm.DecodeFile(file)
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

func writeImage(file string, m image.Image) (err error) {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if strings.ToLower(filepath.Ext(file)) == ".png" {
		return png.Encode(f, m)
	}
	return ppm.Encode(f, m)
}

func catAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, err := ppm.DecodeFile(c.Args().First())
	if err != nil {
		return cli.Exit(err, 1)
	}

	width := cfg.Render.Width
	if c.IsSet("width") {
		width = c.Int("width")
	}
	if width > 0 {
		g = pixmap.Fit(g, width)
	}

	if err := ansi.Render(os.Stdout, g); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func infoAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	for _, file := range c.Args().Slice() {
		g, err := ppm.DecodeFile(file)
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", file, err), 1)
		}
		fmt.Printf("%s: %dx%d, depth %d, checksum %s\n", file, g.Width(), g.Height(), g.ColorDepth(), pixmap.Checksum(g))
	}

	return nil
}

func convertAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	m, err := readImage(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := writeImage(c.Args().Get(1), m); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func reduceAction(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	m, err := readImage(c.Args().Get(0))
	if err != nil {
		return cli.Exit(err, 1)
	}

	g, err := pixmap.Reduce(ppm.FromImage(m), c.Int("colors"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if err := writeImage(c.Args().Get(1), g); err != nil {
		return cli.Exit(err, 1)
	}

	return nil
}

func scanAction(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.Name, 1)
	}

	p, err := openPixmap(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer p.Close()

	if c.Bool("prune") {
		n, err := p.Catalog().Prune()
		if err != nil {
			return cli.Exit(err, 1)
		}
		newLogger(c).Printf("Pruned %d missing images\n", n)
	}

	for _, dir := range c.Args().Slice() {
		if err := p.Scan(dir); err != nil {
			return cli.Exit(err, 1)
		}
	}

	return nil
}

func listAction(c *cli.Context) error {
	p, err := openPixmap(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer p.Close()

	entries, err := p.Catalog().Entries()
	if err != nil {
		return cli.Exit(err, 1)
	}

	for _, e := range entries {
		fmt.Printf("%s\t%dx%d\t%d\t%s\n", e.Checksum, e.Width, e.Height, e.ColorDepth, e.Path)
	}

	return nil
}

func dupesAction(c *cli.Context) error {
	p, err := openPixmap(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	defer p.Close()

	groups, err := p.Catalog().Duplicates()
	if err != nil {
		return cli.Exit(err, 1)
	}

	for i, group := range groups {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s:\n", group[0].Checksum)
		for _, e := range group {
			fmt.Printf("\t%s\n", e.Path)
		}
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	path := c.String("config")
	if c.NArg() > 0 {
		path = c.Args().First()
	}

	if config.Exists(path) && !c.Bool("force") {
		return cli.Exit(fmt.Sprintf("config file %s already exists, use --force to overwrite", path), 1)
	}

	if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("Wrote %s\n", path)

	return nil
}

func main() {
	app := cli.NewApp()

	app.Name = "pixmap"
	app.Usage = "Binary PPM image utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			EnvVars: []string{"PIXMAP_CONFIG"},
			Value:   config.DefaultConfigPath(),
			Usage:   "path to configuration file",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"PIXMAP_DB"},
			Usage:   "path to database",
		},
		&cli.IntFlag{
			Name:  "workers",
			Usage: "number of images to decode concurrently",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "cat",
			Usage:     "Render an image on the terminal",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "width",
					Usage: "scale the image to at most this many columns",
				},
			},
			Action: catAction,
		},
		{
			Name:      "info",
			Usage:     "Print image dimensions, color depth and checksum",
			ArgsUsage: "FILE...",
			Action:    infoAction,
		},
		{
			Name:        "convert",
			Usage:       "Convert an image to PPM or PNG",
			Description: "The output format is PNG if OUTPUT ends in .png, otherwise PPM.",
			ArgsUsage:   "INPUT OUTPUT",
			Action:      convertAction,
		},
		{
			Name:      "reduce",
			Usage:     "Reduce the number of colors in an image",
			ArgsUsage: "INPUT OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Value: 16,
					Usage: "number of colors, between 2 and 256",
				},
			},
			Action: reduceAction,
		},
		{
			Name:      "scan",
			Usage:     "Scan filesystem and catalog images",
			ArgsUsage: "DIRECTORY...",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "prune",
					Usage: "remove images that no longer exist first",
				},
			},
			Action: scanAction,
		},
		{
			Name:   "list",
			Usage:  "List cataloged images",
			Action: listAction,
		},
		{
			Name:   "dupes",
			Usage:  "List cataloged images with identical pixels",
			Action: dupesAction,
		},
		{
			Name:  "config",
			Usage: "Manage the configuration file",
			Subcommands: []*cli.Command{
				{
					Name:      "init",
					Usage:     "Write a default configuration file",
					ArgsUsage: "[PATH]",
					Flags: []cli.Flag{
						&cli.BoolFlag{
							Name:  "force",
							Usage: "overwrite an existing file",
						},
					},
					Action: configInitAction,
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
