// internal/service/auth_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fxwallet/internal/domain"
	"fxwallet/internal/util"
	"fxwallet/pkg/db"
)

const testJWTSecret = "test-secret"

// authServiceFixture bundles the mocks behind an AuthService under test.
type authServiceFixture struct {
	userRepo     *MockUserRepository
	walletRepo   *MockWalletRepository
	txController *MockTxController
	service      AuthService
}

func newAuthServiceFixture() *authServiceFixture {
	f := &authServiceFixture{
		userRepo:     new(MockUserRepository),
		walletRepo:   new(MockWalletRepository),
		txController: new(MockTxController),
	}
	f.service = NewAuthService(
		new(MockDBBeginner),
		new(MockDBExecutor),
		f.userRepo,
		f.walletRepo,
		func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
			return f.txController, nil
		},
		func(tx db.TxController) error {
			return f.txController.Commit()
		},
		func(tx db.TxController) {
			_ = f.txController.Rollback()
		},
		testJWTSecret,
	)
	return f
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.txController.On("Commit").Return(nil)
		f.txController.On("Rollback").Return(nil)

		var createdUser *domain.User
		f.userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				createdUser = args.Get(2).(*domain.User)
			}).
			Return(nil)
		f.walletRepo.On("CreateWallet", mock.Anything, mock.Anything, mock.AnythingOfType("*domain.Wallet")).Return(nil)

		user, wallet, err := f.service.Register(ctx, "Alice@Example.com", "s3cret")
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", user.Email, "email is normalized")
		assert.True(t, user.Balance.Equal(decimal.Zero))
		assert.Equal(t, user.ID, wallet.UserID)
		assert.True(t, wallet.USDBalance.IsZero())
		assert.Empty(t, wallet.Currencies)

		require.NotNil(t, createdUser)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte("s3cret")))
		f.txController.AssertCalled(t, "Commit")
	})

	t.Run("EmptyFields", func(t *testing.T) {
		f := newAuthServiceFixture()

		_, _, err := f.service.Register(ctx, "", "pw")
		assert.ErrorIs(t, err, util.ErrInvalidInput)

		_, _, err = f.service.Register(ctx, "a@b.c", "")
		assert.ErrorIs(t, err, util.ErrInvalidInput)

		f.userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.txController.On("Rollback").Return(nil)
		f.userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(util.ErrDuplicateEmail)

		_, _, err := f.service.Register(ctx, "a@b.c", "pw")
		assert.ErrorIs(t, err, util.ErrDuplicateEmail)
		f.walletRepo.AssertNotCalled(t, "CreateWallet")
		f.txController.AssertNotCalled(t, "Commit")
	})

	t.Run("WalletCreateFailureAbortsTransaction", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.txController.On("Rollback").Return(nil)
		f.userRepo.On("CreateUser", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.walletRepo.On("CreateWallet", mock.Anything, mock.Anything, mock.Anything).Return(util.ErrStoreUnavailable)

		_, _, err := f.service.Register(ctx, "a@b.c", "pw")
		assert.Error(t, err)
		f.txController.AssertNotCalled(t, "Commit")
	})
}

func TestLoginAndVerifyToken(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: uuid.New(), Email: "a@b.c", PasswordHash: string(hash)}

	t.Run("SuccessRoundTrip", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "a@b.c").Return(user, nil)

		token, loggedIn, err := f.service.Login(ctx, "a@b.c", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, user.ID, loggedIn.ID)
		require.NotEmpty(t, token)

		userID, err := f.service.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "a@b.c").Return(user, nil)

		_, _, err := f.service.Login(ctx, "a@b.c", "wrong")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("UnknownEmailHidesExistence", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "nobody@b.c").Return(nil, util.ErrNotFound)

		_, _, err := f.service.Login(ctx, "nobody@b.c", "pw")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("GarbageTokenRejected", func(t *testing.T) {
		f := newAuthServiceFixture()
		_, err := f.service.VerifyToken("not.a.token")
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})

	t.Run("TokenSignedWithOtherSecretRejected", func(t *testing.T) {
		f := newAuthServiceFixture()
		f.userRepo.On("GetUserByEmail", mock.Anything, mock.Anything, "a@b.c").Return(user, nil)

		token, _, err := f.service.Login(ctx, "a@b.c", "s3cret")
		require.NoError(t, err)

		other := newAuthServiceFixture()
		otherService := NewAuthService(
			new(MockDBBeginner),
			new(MockDBExecutor),
			other.userRepo,
			other.walletRepo,
			func(ctx context.Context, dbConn db.DBTxBeginner) (db.TxController, error) {
				return other.txController, nil
			},
			func(tx db.TxController) error { return nil },
			func(tx db.TxController) {},
			"different-secret",
		)

		_, err = otherService.VerifyToken(token)
		assert.ErrorIs(t, err, util.ErrInvalidCredentials)
	})
}
