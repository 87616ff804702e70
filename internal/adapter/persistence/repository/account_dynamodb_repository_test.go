package repository

import (
	"context"
	"errors"
	"testing"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTables = AccountTables{
	Accounts:    "accounts",
	Emails:      "account_emails",
	Profiles:    "profiles",
	Credentials: "credentials",
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	fake := &fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		switch aws.ToString(in.TableName) {
		case "account_emails":
			av, _ := attributevalue.MarshalMap(accountEmailItem{Email: "camille@example.fr", AccountID: "a-1"})
			return &dynamodb.GetItemOutput{Item: av}, nil
		case "accounts":
			av, _ := attributevalue.MarshalMap(accountItem{ID: "a-1", Email: "camille@example.fr", Name: "Camille", CreatedAt: formatTime(created)})
			return &dynamodb.GetItemOutput{Item: av}, nil
		}
		return &dynamodb.GetItemOutput{}, nil
	}}
	repo := NewAccountDynamoRepository(fake, testTables)

	a, err := repo.GetByEmail(context.Background(), "camille@example.fr")
	require.NoError(t, err)
	assert.Equal(t, "a-1", a.ID)
	assert.True(t, a.CreatedAt.Equal(created))

	missing := NewAccountDynamoRepository(&fakeDynamo{}, testTables)
	a, err = missing.GetByEmail(context.Background(), "nobody@example.fr")
	require.NoError(t, err)
	assert.Empty(t, a.ID)
}

func TestAccountRepository_CreateShadowAccount(t *testing.T) {
	a := entities.Account{ID: "a-1", Email: "camille@example.fr", Name: "Camille", CreatedAt: created}
	p := entities.Profile{AccountID: "a-1", Role: entities.RoleProspect, Name: "Camille", Email: a.Email, CreatedAt: created}
	c := entities.Credential{AccountID: "a-1", PasswordHash: "$2a$10$hash", MustChange: true, CreatedAt: created}

	t.Run("writes all records", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewAccountDynamoRepository(fake, testTables)
		require.NoError(t, repo.CreateShadowAccount(context.Background(), a, p, c))

		items := fake.trans[0].TransactItems
		require.Len(t, items, 4)
		assert.Equal(t, "account_emails", aws.ToString(items[0].Put.TableName))
		assert.Equal(t, "email", items[0].Put.ExpressionAttributeNames["#pk"])
		assert.Equal(t, "credentials", aws.ToString(items[3].Put.TableName))
		assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, items[3].Put.Item["must_change"])
	})

	t.Run("email guard lost", func(t *testing.T) {
		fake := &fakeDynamo{transErr: &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("ConditionalCheckFailed")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
				{Code: aws.String("None")},
			},
		}}
		repo := NewAccountDynamoRepository(fake, testTables)
		err := repo.CreateShadowAccount(context.Background(), a, p, c)
		assert.ErrorIs(t, err, interfaces.ErrAccountEmailTaken)
	})

	t.Run("other cancellation", func(t *testing.T) {
		fake := &fakeDynamo{transErr: &types.TransactionCanceledException{
			CancellationReasons: []types.CancellationReason{
				{Code: aws.String("None")},
				{Code: aws.String("ConditionalCheckFailed")},
			},
		}}
		repo := NewAccountDynamoRepository(fake, testTables)
		err := repo.CreateShadowAccount(context.Background(), a, p, c)
		require.Error(t, err)
		assert.False(t, errors.Is(err, interfaces.ErrAccountEmailTaken))
	})
}

func TestAccountRepository_CreateProfileKeepsExisting(t *testing.T) {
	stored := profileItem{AccountID: "a-1", Role: "client", Name: "Camille", Email: "camille@example.fr", CreatedAt: formatTime(created)}
	fake := &fakeDynamo{
		putErr: &types.ConditionalCheckFailedException{},
		getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			av, _ := attributevalue.MarshalMap(stored)
			return &dynamodb.GetItemOutput{Item: av}, nil
		},
	}
	repo := NewAccountDynamoRepository(fake, testTables)

	got, err := repo.CreateProfile(context.Background(), entities.Profile{AccountID: "a-1", Role: entities.RoleProspect})
	require.NoError(t, err)
	assert.Equal(t, entities.RoleClient, got.Role)
}
