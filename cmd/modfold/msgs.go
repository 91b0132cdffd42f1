package modfold

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A modding toolkit for layered game data"
	MsgExtensionsShort = "List installed extensions in load order"
	MsgExtractShort    = "Extract a virtual path to a local file"
	MsgUnpackShort     = "Unpack a catalog into a directory"
	MsgPackShort       = "Pack a directory into a catalog"
	MsgDiffShort       = "Generate a patch between two XML files"
	MsgExportShort     = "Export edited files as a patch extension"
	MsgTopicsShort     = "Display available documentation topics"
	MsgTopicsLong      = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort = "Generate shell completion script"
	MsgVersionShort    = "Print version information"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgNoExtensions   = "No extensions installed."
	MsgExtractedTo    = "Extracted %s to %s\n"
	MsgUnpackedFormat = "Unpacked %d files to %s"
	MsgPackedFormat   = "Packed %d files into %s"
	MsgPatchIsEmpty   = "Documents are identical, no patch written."

	// Error messages
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrInitPaths    = "failed to locate game installation: %w"
	MsgErrBuildIndex   = "failed to index game data: %w"
	MsgErrResolve      = "failed to resolve %s: %w"
	MsgErrNotFound     = "no file at virtual path %s"
	MsgErrReadCatalog  = "failed to read catalog: %w"
	MsgErrWriteCatalog = "failed to write catalog: %w"
	MsgErrParseXML     = "failed to parse %s: %w"
	MsgErrDiff         = "failed to diff documents: %w"
	MsgErrExport       = "failed to export extension: %w"
	MsgErrWriteOutput  = "failed to write output: %w"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without executing them"
	MsgFlagRoot       = "Game installation root (overrides config and environment)"
	MsgFlagConfig     = "Config file to load instead of the default"
	MsgFlagOutput     = "Output file (defaults to stdout)"
	MsgFlagUnpackDir  = "Directory to unpack into (default: catalog name without extension)"
	MsgFlagPackOut    = "Catalog file to write (required)"
	MsgFlagPermissive = "Log hash mismatches instead of failing"
	MsgFlagExportID   = "Extension ID for the exported content.xml"
	MsgFlagExportName = "Display name for the exported content.xml"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/extensions-long.txt
	msgExtensionsLongRaw string
	MsgExtensionsLong    = strings.TrimSpace(msgExtensionsLongRaw)

	//go:embed msgs/extensions-example.txt
	msgExtensionsExampleRaw string
	MsgExtensionsExample    = strings.TrimSpace(msgExtensionsExampleRaw)

	//go:embed msgs/extract-long.txt
	msgExtractLongRaw string
	MsgExtractLong    = strings.TrimSpace(msgExtractLongRaw)

	//go:embed msgs/extract-example.txt
	msgExtractExampleRaw string
	MsgExtractExample    = strings.TrimSpace(msgExtractExampleRaw)

	//go:embed msgs/unpack-long.txt
	msgUnpackLongRaw string
	MsgUnpackLong    = strings.TrimSpace(msgUnpackLongRaw)

	//go:embed msgs/unpack-example.txt
	msgUnpackExampleRaw string
	MsgUnpackExample    = strings.TrimSpace(msgUnpackExampleRaw)

	//go:embed msgs/pack-long.txt
	msgPackLongRaw string
	MsgPackLong    = strings.TrimSpace(msgPackLongRaw)

	//go:embed msgs/pack-example.txt
	msgPackExampleRaw string
	MsgPackExample    = strings.TrimSpace(msgPackExampleRaw)

	//go:embed msgs/diff-long.txt
	msgDiffLongRaw string
	MsgDiffLong    = strings.TrimSpace(msgDiffLongRaw)

	//go:embed msgs/diff-example.txt
	msgDiffExampleRaw string
	MsgDiffExample    = strings.TrimSpace(msgDiffExampleRaw)

	//go:embed msgs/export-long.txt
	msgExportLongRaw string
	MsgExportLong    = strings.TrimSpace(msgExportLongRaw)

	//go:embed msgs/export-example.txt
	msgExportExampleRaw string
	MsgExportExample    = strings.TrimSpace(msgExportExampleRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
