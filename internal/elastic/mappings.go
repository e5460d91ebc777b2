package elastic

import _ "embed"

// Index mappings shipped with the binaries so a fresh cluster can be
// bootstrapped without external files.

//go:embed mapping/copilot_user_metrics.json
var userMetricsMapping []byte

//go:embed mapping/developer_activity.json
var developerActivityMapping []byte

// UserMetricsMapping returns the mapping for the assistant-usage index.
func UserMetricsMapping() []byte { return userMetricsMapping }

// DeveloperActivityMapping returns the mapping for the activity index.
func DeveloperActivityMapping() []byte { return developerActivityMapping }
