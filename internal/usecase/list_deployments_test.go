package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/QubeSwap/sgn-v2-contracts/internal/domain/models"
	"github.com/QubeSwap/sgn-v2-contracts/internal/usecase"
)

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	deployments := []*models.Deployment{
		{ContractName: "QubeBridge", Network: "bsc", Address: "0x01", Verification: models.VerificationInfo{Status: models.VerificationStatusVerified}},
		{ContractName: "PeggedTokenBridge", Network: "bsc", Address: "0x02"},
		{ContractName: "QubeBridge", Network: "polygon", Address: "0x03", Verification: models.VerificationInfo{Status: models.VerificationStatusFailed}},
	}

	t.Run("list all deployments", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", mock.Anything, "").Return(deployments, nil)
		sink := &recordingSink{}

		result, err := usecase.NewListDeployments(repo, sink).Run(ctx, usecase.ListDeploymentsParams{})
		require.NoError(t, err)

		assert.Len(t, result.Deployments, 3)
		assert.Equal(t, 3, result.Summary.Total)
		assert.Equal(t, 1, result.Summary.Verified)
		assert.Equal(t, map[string]int{"bsc": 2, "polygon": 1}, result.Summary.ByNetwork)
		assert.NotEmpty(t, sink.events)
		repo.AssertExpectations(t)
	})

	t.Run("filter by contract", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", mock.Anything, "").Return(deployments, nil)

		result, err := usecase.NewListDeployments(repo, usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{ContractName: "QubeBridge"})
		require.NoError(t, err)
		assert.Len(t, result.Deployments, 2)
	})

	t.Run("network is passed to the repository", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", mock.Anything, "polygon").Return(deployments[2:], nil)

		result, err := usecase.NewListDeployments(repo, usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{Network: "polygon"})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.Total)
		repo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockDeploymentRepository)
		repo.On("ListDeployments", mock.Anything, "").Return(nil, errors.New("permission denied"))

		_, err := usecase.NewListDeployments(repo, usecase.NopProgress{}).Run(ctx, usecase.ListDeploymentsParams{})
		assert.EqualError(t, err, "permission denied")
	})
}
