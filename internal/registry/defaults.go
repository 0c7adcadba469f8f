package registry

// DefaultChecks is the built-in check catalog used when no checks file is
// supplied. It mirrors the promotion gates of the agent platform: config and
// test gates everywhere, integration gates only where the backing service is
// provisioned.
func DefaultChecks() []CheckDefinition {
	return []CheckDefinition{
		{
			ID:          "config-validate",
			Description: "Validate platform configuration files parse and contain required keys",
			Category:    CategoryConfig,
			Required:    true,
			Command:     "python scripts/validate_config.py",
		},
		{
			ID:          "env-vars-present",
			Description: "Verify required environment variables are set for the target environment",
			Category:    CategoryConfig,
			Required:    true,
			Command:     "scripts/check_env_vars.sh",
		},
		{
			ID:          "unit-tests",
			Description: "Run the agent unit test suite",
			Category:    CategoryTests,
			Required:    true,
			Command:     "pytest tests/unit -q",
		},
		{
			ID:           "smoke-tests",
			Description:  "Run smoke tests against a locally started agent",
			Category:     CategoryTests,
			Required:     false,
			Command:      "pytest tests/smoke -q",
			Environments: []Environment{EnvDev, EnvStaging},
		},
		{
			ID:           "search-index-reachable",
			Description:  "Verify the vector search index answers a probe query",
			Category:     CategorySearch,
			Required:     true,
			Command:      "scripts/probe_search.sh",
			RequiredWhen: "VECTOR_SEARCH_ENABLED=true",
		},
		{
			ID:           "queue-roundtrip",
			Description:  "Publish and consume a canary message on the task queue",
			Category:     CategoryQueue,
			Required:     true,
			Command:      "scripts/queue_canary.sh",
			RequiredWhen: "TASK_QUEUE_ENABLED=true",
		},
		{
			ID:           "storage-rw",
			Description:  "Write and read back a marker object in the artifact bucket",
			Category:     CategoryStorage,
			Required:     true,
			Command:      "scripts/storage_roundtrip.sh",
			Environments: []Environment{EnvStaging, EnvProd},
		},
		{
			ID:           "slack-webhook",
			Description:  "Post a canary message to the ops notification channel",
			Category:     CategoryNotifications,
			Required:     true,
			Command:      "scripts/slack_canary.sh",
			RequiredWhen: "SLACK_NOTIFICATIONS_ENABLED=true",
			Environments: []Environment{EnvStaging, EnvProd},
		},
	}
}
