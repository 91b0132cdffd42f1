package modfold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/modfold/modfold/internal/version"
	"github.com/modfold/modfold/pkg/catalog"
	"github.com/modfold/modfold/pkg/cobrax/topics"
	"github.com/modfold/modfold/pkg/config"
	"github.com/modfold/modfold/pkg/export"
	"github.com/modfold/modfold/pkg/extension"
	"github.com/modfold/modfold/pkg/logging"
	"github.com/modfold/modfold/pkg/paths"
	"github.com/modfold/modfold/pkg/resolver"
	"github.com/modfold/modfold/pkg/style"
	"github.com/modfold/modfold/pkg/treediff"
	"github.com/modfold/modfold/pkg/vpath"
	"github.com/modfold/modfold/pkg/xmlpatch"
	"github.com/modfold/modfold/pkg/xmltree"
)

//go:embed topics
var topicsFS embed.FS

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		dryRun     bool
		gameRoot   string
		configFile string
	)

	rootCmd := &cobra.Command{
		Use:     "modfold",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging based on verbosity
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			// Show help but return an error to indicate incorrect usage
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&gameRoot, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)

	// Disable automatic help command (we'll use our custom one from topics)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	// Add all commands
	rootCmd.AddCommand(newExtensionsCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newUnpackCmd())
	rootCmd.AddCommand(newPackCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Initialize topic-based help from the guides embedded in the binary
	opts := topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}
	if err := topics.InitializeWithOptions(rootCmd, topicsFS, opts); err != nil {
		log.Warn().Err(err).Msg("Failed to initialize help topics")
	}

	return rootCmd
}

// loadSettings merges configuration for a command invocation: embedded
// defaults, the config file, MODFOLD_* environment variables, then the
// --root flag last. The returned settings carry an absolutized game
// root and a concrete prefs file path.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, _ := flags.GetString("config")
	if configPath == "" {
		configPath = paths.DefaultConfigFile()
	}

	overrides := map[string]interface{}{}
	if root, _ := flags.GetString("root"); root != "" {
		overrides["game.root"] = root
	}

	settings, err := config.Load(configPath, overrides)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(settings.Game.Root)
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}
	settings.Game.Root = p.GameRoot()
	if settings.Extensions.PrefsFile == "" {
		settings.Extensions.PrefsFile = p.PrefsFilePath()
	}

	return settings, nil
}

func newExtensionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "extensions",
		Short:   MsgExtensionsShort,
		Long:    MsgExtensionsLong,
		Example: MsgExtensionsExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("game_root", settings.Game.Root).Msg("Listing extensions from game root")

			r, err := resolver.New(settings)
			if err != nil {
				return fmt.Errorf(MsgErrBuildIndex, err)
			}

			renderer := style.NewTerminalRenderer()
			fmt.Println(renderer.RenderExtensionList(loadOrderedExtensions(r)))

			return nil
		},
	}
}

// loadOrderedExtensions lists extensions in apply order, with the
// disabled and ignored ones appended afterwards in discovery order.
func loadOrderedExtensions(r *resolver.Resolver) []*extension.Extension {
	byID := make(map[string]*extension.Extension)
	for _, ext := range r.Extensions() {
		if _, dup := byID[ext.ID()]; !dup {
			byID[ext.ID()] = ext
		}
	}

	included := make(map[*extension.Extension]bool)
	var ordered []*extension.Extension
	for _, id := range r.ListLoadOrderedExtensions() {
		if ext, ok := byID[id]; ok && !included[ext] {
			ordered = append(ordered, ext)
			included[ext] = true
		}
	}
	for _, ext := range r.Extensions() {
		if !included[ext] {
			ordered = append(ordered, ext)
		}
	}
	return ordered
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "extract <virtual-path>",
		Short:   MsgExtractShort,
		Long:    MsgExtractLong,
		Example: MsgExtractExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}

			r, err := resolver.New(settings)
			if err != nil {
				return fmt.Errorf(MsgErrBuildIndex, err)
			}

			path := vpath.Normalize(args[0])
			d, ok, err := r.Resolve(path)
			if err != nil {
				return fmt.Errorf(MsgErrResolve, path, err)
			}
			if !ok {
				return fmt.Errorf(MsgErrNotFound, path)
			}

			data, err := d.Serialize()
			if err != nil {
				return fmt.Errorf(MsgErrResolve, path, err)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteOutput, err)
			}
			fmt.Printf(MsgExtractedTo, path, output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)

	return cmd
}

func newUnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "unpack <catalog>",
		Short:   MsgUnpackShort,
		Long:    MsgUnpackLong,
		Example: MsgUnpackExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			catPath := args[0]

			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = strings.TrimSuffix(filepath.Base(catPath), filepath.Ext(catPath))
			}
			permissive, _ := cmd.Flags().GetBool("permissive")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			cat := catalog.Open(catPath, catalog.WithPermissiveHashes(permissive))
			entries, err := cat.Entries()
			if err != nil {
				return fmt.Errorf(MsgErrReadCatalog, err)
			}

			var written []string
			for _, entry := range entries {
				data, err := cat.Read(entry.Path)
				if err != nil {
					return fmt.Errorf(MsgErrReadCatalog, err)
				}
				target := filepath.Join(dir, filepath.FromSlash(entry.Path))
				if !dryRun {
					if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
						return fmt.Errorf(MsgErrWriteOutput, err)
					}
					if err := os.WriteFile(target, data, 0644); err != nil {
						return fmt.Errorf(MsgErrWriteOutput, err)
					}
				}
				written = append(written, entry.Path)
			}

			renderer := style.NewTerminalRenderer()
			fmt.Println(renderer.RenderFileList(fmt.Sprintf(MsgUnpackedFormat, len(written), dir), written))
			if dryRun {
				fmt.Println(MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringP("dir", "C", "", MsgFlagUnpackDir)
	cmd.Flags().Bool("permissive", false, MsgFlagPermissive)

	return cmd
}

func newPackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pack <directory>",
		Short:   MsgPackShort,
		Long:    MsgPackLong,
		Example: MsgPackExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			out, _ := cmd.Flags().GetString("out")
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			var entries []catalog.WriteEntry
			err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				entries = append(entries, catalog.WriteEntry{
					Path: filepath.ToSlash(rel),
					Data: data,
				})
				return nil
			})
			if err != nil {
				return fmt.Errorf(MsgErrWriteCatalog, err)
			}

			if !dryRun {
				if err := catalog.Write(out, entries); err != nil {
					return fmt.Errorf(MsgErrWriteCatalog, err)
				}
			}

			var packed []string
			for _, entry := range entries {
				packed = append(packed, entry.Path)
			}
			renderer := style.NewTerminalRenderer()
			fmt.Println(renderer.RenderFileList(fmt.Sprintf(MsgPackedFormat, len(entries), out), packed))
			if dryRun {
				fmt.Println(MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringP("out", "o", "", MsgFlagPackOut)
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diff <original> <modified>",
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		Example: MsgDiffExample,
		Args:    cobra.ExactArgs(2),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			original, err := parseXMLFile(args[0])
			if err != nil {
				return err
			}
			modified, err := parseXMLFile(args[1])
			if err != nil {
				return err
			}

			patch, err := treediff.Diff(original, modified)
			if err != nil {
				return fmt.Errorf(MsgErrDiff, err)
			}
			if xmlpatch.IsNoop(patch) {
				fmt.Println(MsgPatchIsEmpty)
				return nil
			}

			data, err := xmltree.Serialize(patch)
			if err != nil {
				return fmt.Errorf(MsgErrDiff, err)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				_, err := os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf(MsgErrWriteOutput, err)
			}
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", MsgFlagOutput)

	return cmd
}

// parseXMLFile reads and parses one XML document from disk.
func parseXMLFile(path string) (*etree.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(MsgErrParseXML, path, err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf(MsgErrParseXML, path, err)
	}
	return doc, nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "export <directory>",
		Short:   MsgExportShort,
		Long:    MsgExportLong,
		Example: MsgExportExample,
		Args:    cobra.ExactArgs(1),
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if id, _ := cmd.Flags().GetString("id"); id != "" {
				settings.Export.ID = id
			}
			if name, _ := cmd.Flags().GetString("name"); name != "" {
				settings.Export.Name = name
			}
			dryRun, _ := cmd.Root().PersistentFlags().GetBool("dry-run")

			r, err := resolver.New(settings)
			if err != nil {
				return fmt.Errorf(MsgErrBuildIndex, err)
			}
			e, err := export.New(settings, r, dryRun)
			if err != nil {
				return fmt.Errorf(MsgErrExport, err)
			}

			dir := args[0]
			log.Info().
				Str("dir", dir).
				Str("extension", settings.Export.ID).
				Bool("dry_run", dryRun).
				Msg("Exporting edited files")

			err = filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if entry.IsDir() {
					return nil
				}
				rel, err := filepath.Rel(dir, path)
				if err != nil {
					return err
				}
				return stageEdited(r, e, filepath.ToSlash(rel), path)
			})
			if err != nil {
				return fmt.Errorf(MsgErrExport, err)
			}

			res, err := e.Run()
			if err != nil {
				return fmt.Errorf(MsgErrExport, err)
			}

			renderer := style.NewTerminalRenderer()
			fmt.Println(renderer.RenderExport(res.Dir, res.Files, res.DryRun))
			return nil
		},
	}

	cmd.Flags().String("id", "", MsgFlagExportID)
	cmd.Flags().String("name", "", MsgFlagExportName)

	return cmd
}

// stageEdited stages one edited file: an XML file that resolves against
// the game data becomes a minimal patch, everything else is carried
// into the export verbatim.
func stageEdited(r *resolver.Resolver, e *export.Exporter, rel, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	if vpath.IsXML(rel) {
		d, ok, err := r.Resolve(rel)
		if err != nil {
			return err
		}
		if ok && d.IsXML() {
			edited := etree.NewDocument()
			if err := edited.ReadFromBytes(data); err != nil {
				return fmt.Errorf(MsgErrParseXML, file, err)
			}
			return e.AddEdited(d, edited)
		}
	}

	e.AddBytes(rel, data)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("modfold %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
