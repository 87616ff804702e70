package repository

import (
	"context"
	"errors"

	"agency_quotes/internal/domain/entities"
	"agency_quotes/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AccountTables names the four tables behind an account.
type AccountTables struct {
	Accounts    string // PK: id
	Emails      string // PK: email, guards uniqueness
	Profiles    string // PK: account_id
	Credentials string // PK: account_id
}

type accountItem struct {
	ID        string `dynamodbav:"id"`
	Email     string `dynamodbav:"email"`
	Name      string `dynamodbav:"name"`
	CreatedAt string `dynamodbav:"created_at"`
}

type accountEmailItem struct {
	Email     string `dynamodbav:"email"`
	AccountID string `dynamodbav:"account_id"`
}

type profileItem struct {
	AccountID string `dynamodbav:"account_id"`
	Role      string `dynamodbav:"role"`
	Name      string `dynamodbav:"name"`
	Email     string `dynamodbav:"email"`
	Phone     string `dynamodbav:"phone,omitempty"`
	Company   string `dynamodbav:"company,omitempty"`
	CreatedAt string `dynamodbav:"created_at"`
}

type credentialItem struct {
	AccountID    string `dynamodbav:"account_id"`
	PasswordHash string `dynamodbav:"password_hash"`
	MustChange   bool   `dynamodbav:"must_change"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// guardIndex is the position of the email guard in the shadow account transaction.
const guardIndex = 0

type AccountDynamoRepository struct {
	ddb    DynamoAPI
	tables AccountTables
}

var _ interfaces.IAccountRepository = (*AccountDynamoRepository)(nil)

func NewAccountDynamoRepository(ddb DynamoAPI, tables AccountTables) *AccountDynamoRepository {
	return &AccountDynamoRepository{ddb: ddb, tables: tables}
}

func (r *AccountDynamoRepository) GetByEmail(ctx context.Context, email string) (entities.Account, error) {
	var guard accountEmailItem
	found, err := r.get(ctx, r.tables.Emails, stringKey("email", email), &guard)
	if err != nil || !found {
		return entities.Account{}, err
	}

	var it accountItem
	found, err = r.get(ctx, r.tables.Accounts, stringKey("id", guard.AccountID), &it)
	if err != nil || !found {
		return entities.Account{}, err
	}
	return entities.Account{
		ID:        it.ID,
		Email:     it.Email,
		Name:      it.Name,
		CreatedAt: parseTime(it.CreatedAt),
	}, nil
}

func (r *AccountDynamoRepository) GetProfile(ctx context.Context, accountID string) (entities.Profile, error) {
	var it profileItem
	found, err := r.get(ctx, r.tables.Profiles, stringKey("account_id", accountID), &it)
	if err != nil || !found {
		return entities.Profile{}, err
	}
	return fromProfileItem(it), nil
}

// CreateProfile inserts the profile unless one already exists, in which case
// the stored row is returned.
func (r *AccountDynamoRepository) CreateProfile(ctx context.Context, p entities.Profile) (entities.Profile, error) {
	av, err := attributevalue.MarshalMap(toProfileItem(p))
	if err != nil {
		return entities.Profile{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tables.Profiles),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#account_id)"),
		ExpressionAttributeNames: map[string]string{
			"#account_id": "account_id",
		},
	})
	if isConditionalCheckFailed(err) {
		return r.GetProfile(ctx, p.AccountID)
	}
	if err != nil {
		return entities.Profile{}, err
	}
	return p, nil
}

func (r *AccountDynamoRepository) CreateShadowAccount(ctx context.Context, a entities.Account, p entities.Profile, c entities.Credential) error {
	guard, err := attributevalue.MarshalMap(accountEmailItem{Email: a.Email, AccountID: a.ID})
	if err != nil {
		return err
	}
	account, err := attributevalue.MarshalMap(accountItem{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: formatTime(a.CreatedAt),
	})
	if err != nil {
		return err
	}
	profile, err := attributevalue.MarshalMap(toProfileItem(p))
	if err != nil {
		return err
	}
	credential, err := attributevalue.MarshalMap(credentialItem{
		AccountID:    c.AccountID,
		PasswordHash: c.PasswordHash,
		MustChange:   c.MustChange,
		CreatedAt:    formatTime(c.CreatedAt),
	})
	if err != nil {
		return err
	}

	items := []types.TransactWriteItem{
		{Put: insertOnly(r.tables.Emails, guard, "email")},
		{Put: insertOnly(r.tables.Accounts, account, "id")},
		{Put: insertOnly(r.tables.Profiles, profile, "account_id")},
		{Put: insertOnly(r.tables.Credentials, credential, "account_id")},
	}
	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if emailGuardFailed(err) {
		return interfaces.ErrAccountEmailTaken
	}
	return err
}

func (r *AccountDynamoRepository) get(ctx context.Context, table string, key map[string]types.AttributeValue, into any) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(table),
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, err
	}
	if len(out.Item) == 0 {
		return false, nil
	}
	return true, attributevalue.UnmarshalMap(out.Item, into)
}

func insertOnly(table string, item map[string]types.AttributeValue, pk string) *types.Put {
	return &types.Put{
		TableName:                aws.String(table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{"#pk": pk},
	}
}

func emailGuardFailed(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) || len(tce.CancellationReasons) <= guardIndex {
		return false
	}
	return aws.ToString(tce.CancellationReasons[guardIndex].Code) == "ConditionalCheckFailed"
}

func toProfileItem(p entities.Profile) profileItem {
	return profileItem{
		AccountID: p.AccountID,
		Role:      string(p.Role),
		Name:      p.Name,
		Email:     p.Email,
		Phone:     p.Phone,
		Company:   p.Company,
		CreatedAt: formatTime(p.CreatedAt),
	}
}

func fromProfileItem(it profileItem) entities.Profile {
	return entities.Profile{
		AccountID: it.AccountID,
		Role:      entities.Role(it.Role),
		Name:      it.Name,
		Email:     it.Email,
		Phone:     it.Phone,
		Company:   it.Company,
		CreatedAt: parseTime(it.CreatedAt),
	}
}
