// Package mocks provides hand-written test doubles for the store and auth
// interfaces.
//
// Each mock exposes one function field per method. Unset fields fall back to
// a documented default (empty lists, not-found errors, the Token and Claims
// fields of MockJWTService) so tests only stub what they exercise:
//
//	papers := &mocks.MockPaperStore{
//	    GetByIDFn: func(ctx context.Context, id string) (*domain.Paper, error) {
//	        return paper, nil
//	    },
//	}
//	h := api.NewPaperHandler(papers, api.LegacyStatusPolicy(), logger)
//
// Store mocks record method calls; Calls returns them in order.
package mocks
