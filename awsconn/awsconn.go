package awsconn

import (
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/hammerspace-solutions/aurora-aws/pkg/api"
)

// NewSessionFromRegion creates an AWS session from an AWS region and a debug flag
func NewSessionFromRegion(region api.Region, debug bool) (*session.Session, error) {
	awsConfig := aws.NewConfig().
		WithRegion(region.String()).
		WithCredentialsChainVerboseErrors(true)

	if debug {
		awsConfig = awsConfig.WithLogLevel(aws.LogDebug)
	}

	session, err := newSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to establish aws session: %v", err)
	}
	return session, nil
}

// newSession returns an AWS session which supports source_profile and assume role with MFA
func newSession(config *aws.Config) (*session.Session, error) {
	return session.NewSessionWithOptions(session.Options{
		Config: *config,
		// Required for AWS_SDK_LOAD_CONFIG
		SharedConfigState: session.SharedConfigEnable,
		// Required by MFA
		AssumeRoleTokenProvider: stscreds.StdinTokenProvider,
	})
}
