// Package simulate generates statistically plausible assistant-usage and
// developer-activity datasets for dashboard testing. All randomness flows
// through an injected rand.Rand so fixtures can pin exact outputs.
package simulate

// Persona clusters the behavioral parameters of a simulated developer:
// baseline activity ranges, the productivity multiplier once the adoption
// ramp is active, the chance of using the assistant on an eligible day, the
// suggestion acceptance range, and the feature subset available to them.
type Persona struct {
	Name                string
	BaseCommits         [2]int
	BasePRs             [2]int
	BaseReviews         [2]int
	CopilotMultiplier   float64
	CopilotAdoptionRate float64
	AcceptanceRateRange [2]float64
	Features            []string
}

// Persona distribution drawn from usage research: most developers are
// regular users, a minority are power users or skeptics.
var personas = []Persona{
	{
		Name:                "power_user",
		BaseCommits:         [2]int{3, 7},
		BasePRs:             [2]int{1, 2},
		BaseReviews:         [2]int{2, 4},
		CopilotMultiplier:   1.30,
		CopilotAdoptionRate: 0.92,
		AcceptanceRateRange: [2]float64{0.30, 0.40},
		Features:            []string{"code_completion", "chat_panel_ask_mode", "chat_panel_agent_mode", "inline_chat"},
	},
	{
		Name:                "regular",
		BaseCommits:         [2]int{2, 5},
		BasePRs:             [2]int{0, 2},
		BaseReviews:         [2]int{1, 3},
		CopilotMultiplier:   1.20,
		CopilotAdoptionRate: 0.75,
		AcceptanceRateRange: [2]float64{0.25, 0.32},
		Features:            []string{"code_completion", "chat_panel_ask_mode"},
	},
	{
		Name:                "occasional",
		BaseCommits:         [2]int{1, 3},
		BasePRs:             [2]int{0, 1},
		BaseReviews:         [2]int{1, 2},
		CopilotMultiplier:   1.10,
		CopilotAdoptionRate: 0.45,
		AcceptanceRateRange: [2]float64{0.20, 0.28},
		Features:            []string{"code_completion"},
	},
	{
		Name:                "skeptic",
		BaseCommits:         [2]int{1, 3},
		BasePRs:             [2]int{0, 1},
		BaseReviews:         [2]int{1, 2},
		CopilotMultiplier:   1.05,
		CopilotAdoptionRate: 0.25,
		AcceptanceRateRange: [2]float64{0.15, 0.22},
		Features:            []string{"code_completion"},
	},
}

var personaWeights = []float64{0.20, 0.45, 0.25, 0.10}

// Team fixes the repositories and languages its members work in.
type Team struct {
	Name      string
	Repos     []string
	Languages []string
}

var teams = []Team{
	{Name: "platform", Repos: []string{"api-gateway", "auth-service", "config-manager"}, Languages: []string{"go", "python"}},
	{Name: "frontend", Repos: []string{"web-app", "mobile-app", "design-system"}, Languages: []string{"typescript", "javascript", "css"}},
	{Name: "backend", Repos: []string{"order-service", "inventory-service", "payment-service"}, Languages: []string{"java", "kotlin"}},
	{Name: "data", Repos: []string{"analytics-pipeline", "ml-models", "data-warehouse"}, Languages: []string{"python", "sql"}},
	{Name: "devops", Repos: []string{"infrastructure", "ci-cd-pipelines", "monitoring"}, Languages: []string{"terraform", "yaml", "python"}},
}

// IDE carries the weighted primary-editor distribution.
type IDE struct {
	Name          string
	Weight        float64
	PluginVersion string
}

var ides = []IDE{
	{Name: "vscode", Weight: 0.60, PluginVersion: "1.234.0"},
	{Name: "jetbrains", Weight: 0.25, PluginVersion: "1.5.12.6534"},
	{Name: "neovim", Weight: 0.10, PluginVersion: "0.3.0"},
	{Name: "visual-studio", Weight: 0.05, PluginVersion: "17.12.0"},
}

var models = []string{"gpt-4o", "gpt-4o-mini", "claude-3.5-sonnet", "o1-preview"}

var seniorities = []string{"junior", "mid", "senior", "staff"}

var firstNames = []string{
	"alex", "jordan", "taylor", "casey", "morgan", "riley", "quinn", "avery",
	"jamie", "drew", "sam", "chris", "pat", "blake", "cameron", "dakota",
	"skyler", "reese", "finley", "hayden", "emery", "rowan", "sage", "phoenix", "river",
}

var lastNames = []string{
	"chen", "patel", "garcia", "kim", "nguyen", "smith", "johnson", "williams",
	"brown", "jones", "miller", "davis", "rodriguez", "martinez", "hernandez",
	"lopez", "gonzalez", "wilson", "anderson", "thomas", "taylor", "moore", "jackson", "martin", "lee",
}
