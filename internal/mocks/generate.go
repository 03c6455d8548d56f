// Package mocks provides mock implementations for testing the auth ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the port interfaces. The mocks are generated using go:generate directives
// and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	client := mocks.NewMockIdentityProviderClient(ctrl)
//	client.EXPECT().Post(gomock.Any(), gomock.Any(), gomock.Any()).Return(resp, nil)
package mocks

// Generate mocks for the auth port interfaces from internal/ports:
// IdentityProviderClient (Post), TokenCodec (Issue, Verify),
// RevocationStore (Revoke, IsRevoked), LoginAuditor (Record).
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=auth_ports_mock.go github.com/prefeitura-sp/coresso-portal/internal/ports IdentityProviderClient,TokenCodec,RevocationStore,LoginAuditor
