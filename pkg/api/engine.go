package api

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver"
)

// Engine selects the Aurora engine flavor of the cluster.
type Engine string

const (
	EngineAuroraMySQL      Engine = "aurora-mysql"
	EngineAuroraPostgreSQL Engine = "aurora-postgresql"
)

const (
	auroraMySQLDefaultPort      = 3306
	auroraPostgreSQLDefaultPort = 5432
)

// Aurora MySQL engine versions look like "8.0.mysql_aurora.3.04.0".
var auroraMySQLVersionRe = regexp.MustCompile(`^\d+\.\d+\.mysql_aurora\.\d+\.\d+\.\d+$`)

func (e Engine) Valid() error {
	switch e {
	case EngineAuroraMySQL, EngineAuroraPostgreSQL:
		return nil
	}
	return fmt.Errorf("engine must be one of %q and %q but was: %q", EngineAuroraMySQL, EngineAuroraPostgreSQL, string(e))
}

func (e Engine) String() string {
	return string(e)
}

// DefaultPort returns the port the engine listens on unless overridden.
func (e Engine) DefaultPort() int {
	if e == EngineAuroraMySQL {
		return auroraMySQLDefaultPort
	}
	return auroraPostgreSQLDefaultPort
}

// ValidateVersion checks an optional engine version string against the
// version scheme of the engine family.
func (e Engine) ValidateVersion(version string) error {
	if version == "" {
		return nil
	}

	switch e {
	case EngineAuroraPostgreSQL:
		// Aurora PostgreSQL versions are plain "major.minor" e.g. "15.4"
		if _, err := semver.NewVersion(version); err != nil {
			return fmt.Errorf("invalid engineVersion %q for engine %s: %v", version, e, err)
		}
	case EngineAuroraMySQL:
		if !auroraMySQLVersionRe.MatchString(version) {
			return fmt.Errorf("invalid engineVersion %q for engine %s: must look like \"8.0.mysql_aurora.3.04.0\"", version, e)
		}
	}

	return nil
}
