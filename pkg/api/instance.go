package api

import "fmt"

var validMonitoringIntervals = []int{0, 1, 5, 10, 15, 30, 60}

// InstanceSettings describes one DB instance of the cluster. The same
// struct doubles as the cluster-wide default and the per-instance
// override, so fields that need a distinguishable "unset" state are
// pointers and get filled in by merging the override over the default.
type InstanceSettings struct {
	InstanceClass           string               `yaml:"instanceClass,omitempty"`
	PerformanceInsights     *PerformanceInsights `yaml:"performanceInsights,omitempty"`
	MonitoringInterval      *int                 `yaml:"monitoringInterval,omitempty"`
	MonitoringRoleARN       string               `yaml:"monitoringRoleArn,omitempty"`
	AutoMinorVersionUpgrade *bool                `yaml:"autoMinorVersionUpgrade,omitempty"`
	PubliclyAccessible      *bool                `yaml:"publiclyAccessible,omitempty"`
	UnknownKeys             `yaml:",inline"`
}

// PerformanceInsights enables Performance Insights on an instance.
type PerformanceInsights struct {
	Enabled         bool   `yaml:"enabled,omitempty"`
	RetentionPeriod int    `yaml:"retentionPeriod,omitempty"`
	KMSKeyARN       string `yaml:"kmsKeyArn,omitempty"`
	UnknownKeys     `yaml:",inline"`
}

func (s InstanceSettings) Validate() error {
	if s.InstanceClass == "" {
		return fmt.Errorf("instanceClass must be set")
	}

	if s.MonitoringInterval != nil {
		valid := false
		for _, i := range validMonitoringIntervals {
			if *s.MonitoringInterval == i {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("monitoringInterval must be one of %v but was: %d", validMonitoringIntervals, *s.MonitoringInterval)
		}
		if *s.MonitoringInterval > 0 && s.MonitoringRoleARN == "" {
			return fmt.Errorf("monitoringRoleArn must be set when monitoringInterval is %d", *s.MonitoringInterval)
		}
	}

	if pi := s.PerformanceInsights; pi != nil && pi.Enabled {
		if pi.RetentionPeriod != 0 && pi.RetentionPeriod != 7 && pi.RetentionPeriod != 731 {
			return fmt.Errorf("performanceInsights.retentionPeriod must be 7 or 731 but was: %d", pi.RetentionPeriod)
		}
		if pi.KMSKeyARN != "" && !looksLikeARN(pi.KMSKeyARN) {
			return fmt.Errorf("performanceInsights.kmsKeyArn is not a valid ARN: %s", pi.KMSKeyARN)
		}
	}

	if s.MonitoringRoleARN != "" && !looksLikeARN(s.MonitoringRoleARN) {
		return fmt.Errorf("monitoringRoleArn is not a valid ARN: %s", s.MonitoringRoleARN)
	}

	return nil
}
