package projectconfig

// Names of the reference checks shipped as the default profiles.
const (
	CheckLockfileSync   = "lockfile-sync"
	CheckLint           = "lint"
	CheckTypeCheck      = "type-check"
	CheckMemoryConfig   = "memory-config"
	CheckLockfilesExist = "lockfiles-exist"
)

// ReferenceChecks returns the pre-merge checks for a repository with a
// pnpm frontend and a uv-managed API, in display order. Each call returns
// fresh values.
func ReferenceChecks() []CheckConfig {
	return []CheckConfig{
		{
			Name: CheckLockfileSync,
			Kind: "command",
			With: map[string]any{
				"command":     "pnpm install --frozen-lockfile --lockfile-only",
				"dir":         "frontend",
				"fail_detail": "Out of sync",
			},
		},
		{
			Name: CheckLint,
			Kind: "command",
			With: map[string]any{
				"command":     "pnpm lint",
				"dir":         "frontend",
				"fail_detail": "Lint errors found",
			},
		},
		{
			Name: CheckTypeCheck,
			Kind: "command",
			With: map[string]any{
				"command":     "pnpm type-check",
				"dir":         "frontend",
				"fail_detail": "Type errors found",
			},
		},
		{
			Name: CheckMemoryConfig,
			Kind: "file_contains",
			With: map[string]any{
				"path":        "frontend/package.json",
				"substring":   "--max-old-space-size",
				"fail_detail": "Missing memory limit",
			},
		},
		{
			Name: CheckLockfilesExist,
			Kind: "files_exist",
			With: map[string]any{
				"paths":       []string{"frontend/pnpm-lock.yaml", "api/uv.lock"},
				"fail_detail": "Missing",
			},
		},
	}
}

// ReferenceProfiles returns the built-in profiles: "full" runs every
// reference check, "quick" only the ones that launch no subprocess.
func ReferenceProfiles() map[string][]CheckConfig {
	var quick []CheckConfig
	for _, c := range ReferenceChecks() {
		if c.Kind != "command" {
			quick = append(quick, c)
		}
	}
	return map[string][]CheckConfig{
		DefaultProfile: ReferenceChecks(),
		"quick":        quick,
	}
}
