package cfnstack

import (
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudformation"
)

type Destroyer struct {
	stackName string
	session   *session.Session
	roleARN   string
}

func NewDestroyer(stackName string, session *session.Session, roleARN string) *Destroyer {
	return &Destroyer{
		stackName: stackName,
		session:   session,
		roleARN:   roleARN,
	}
}

func (d *Destroyer) Destroy() error {
	cfSvc := cloudformation.New(d.session)
	input := &cloudformation.DeleteStackInput{
		StackName: aws.String(d.stackName),
	}

	if d.roleARN != "" {
		input.RoleARN = aws.String(d.roleARN)
	}

	_, err := cfSvc.DeleteStack(input)
	return err
}
