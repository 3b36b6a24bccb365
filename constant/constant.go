package constant

const ProjectName = "tmplstore"

// EnvPrefix is the prefix for environment variable overrides, e.g. TMPLSTORE_WORK_DIR.
const EnvPrefix = "TMPLSTORE"

const (
	// TemplatesFileName is the name of the persisted document inside the data dir.
	TemplatesFileName = "config-templates.json"
	// EmptyTemplates is returned by Load when no templates file exists yet.
	EmptyTemplates = `{"templates":[]}`
)
