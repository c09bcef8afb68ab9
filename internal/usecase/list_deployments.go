package usecase

import (
	"context"

	"github.com/samber/lo"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// Network limits the listing to one network; empty lists all
	Network      string
	ContractName string
}

// DeploymentListResult contains the listed deployments
type DeploymentListResult struct {
	Deployments []*models.Deployment `json:"deployments"`
	Summary     DeploymentSummary    `json:"summary"`
}

// DeploymentSummary contains counts over the listed deployments
type DeploymentSummary struct {
	Total     int            `json:"total"`
	Verified  int            `json:"verified"`
	ByNetwork map[string]int `json:"byNetwork"`
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	repo DeploymentRepository
	sink ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(repo DeploymentRepository, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		repo: repo,
		sink: sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployments",
		Spinner: true,
	})

	deployments, err := uc.repo.ListDeployments(ctx, params.Network)
	if err != nil {
		return nil, err
	}

	if params.ContractName != "" {
		deployments = lo.Filter(deployments, func(d *models.Deployment, _ int) bool {
			return d.ContractName == params.ContractName
		})
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   StageCompleted,
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     summarize(deployments),
	}, nil
}

func summarize(deployments []*models.Deployment) DeploymentSummary {
	return DeploymentSummary{
		Total:    len(deployments),
		Verified: lo.CountBy(deployments, func(d *models.Deployment) bool { return d.IsVerified() }),
		ByNetwork: lo.MapValues(
			lo.GroupBy(deployments, func(d *models.Deployment) string { return d.Network }),
			func(ds []*models.Deployment, _ string) int { return len(ds) },
		),
	}
}
