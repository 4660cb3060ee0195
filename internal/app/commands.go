package app

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"catalog_reviews/internal/adapters/observability"
	"catalog_reviews/internal/domain"
)

// ReviewService owns the review collection: it mediates every read and write
// of the "reviews" blob and keeps the owning product's aggregate in step.
type ReviewService struct {
	store domain.Store
	clock clockwork.Clock
	newID func() string
	votes *voteRegistry

	// serialises read-modify-write of the blobs within this process
	mu sync.Mutex
}

func NewReviewService(st domain.Store, clock clockwork.Clock) *ReviewService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ReviewService{store: st, clock: clock, newID: uuid.NewString, votes: newVoteRegistry()}
}

// Submit validates the draft, appends the review to the durable collection and
// folds its rating into the owning product.
func (s *ReviewService) Submit(ctx context.Context, draft domain.ReviewDraft, author *domain.User) (domain.Review, error) {
	draft = draft.Normalize()
	if err := draft.Validate(); err != nil {
		observability.ObserveReview(outcome(err))
		return domain.Review{}, err
	}
	if author == nil || strings.TrimSpace(author.ID) == "" {
		observability.ObserveReview(outcome(domain.ErrUnauthorized))
		return domain.Review{}, domain.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := loadCollection[domain.Review](ctx, s.store, domain.KeyReviews)
	if err != nil {
		observability.ObserveReview(outcome(err))
		return domain.Review{}, err
	}
	// Both collections are read and the new aggregate computed before the
	// first write, so a bad products blob leaves the store untouched.
	products, err := loadCollection[domain.Product](ctx, s.store, domain.KeyProducts)
	if err != nil {
		observability.ObserveReview(outcome(err))
		return domain.Review{}, err
	}
	pi := indexOf(products, func(p domain.Product) bool { return p.ID == draft.ProductID })
	if pi >= 0 {
		updated, err := domain.ApplyNewRating(products[pi], draft.Rating)
		if err != nil {
			observability.ObserveReview(outcome(err))
			return domain.Review{}, err
		}
		products[pi] = updated
	}

	rv := domain.Review{
		ID:         s.newID(),
		ProductID:  draft.ProductID,
		AuthorID:   author.ID,
		Username:   author.Username,
		UserAvatar: author.Avatar,
		Rating:     float64(draft.Rating),
		Title:      draft.Title,
		Body:       draft.Body,
		CreatedAt:  s.clock.Now().UTC(),
		Verified:   true,
	}
	if err := saveCollection(ctx, s.store, domain.KeyReviews, append(reviews, rv)); err != nil {
		observability.ObserveReview(outcome(err))
		return domain.Review{}, err
	}

	if pi < 0 {
		log.Warn().Str("product", rv.ProductID).Msg("review for unknown product; aggregate not updated")
	} else if err := saveCollection(ctx, s.store, domain.KeyProducts, products); err != nil {
		// The review is durable from here on; the aggregate stays one review behind.
		observability.ObserveReview(outcome(err))
		log.Error().Err(err).Str("product", rv.ProductID).Str("review", rv.ID).Msg("product rating update failed")
		return domain.Review{}, err
	}

	observability.ObserveReview("submitted")
	log.Info().
		Str("review", rv.ID).
		Str("product", rv.ProductID).
		Str("author", rv.AuthorID).
		Int("rating", draft.Rating).
		Msg("review submitted")
	return rv, nil
}

// MarkHelpful adds one helpful vote unless this voter already voted on the
// review during the current process lifetime.
func (s *ReviewService) MarkHelpful(ctx context.Context, reviewID string, voter domain.Voter) (domain.Review, error) {
	if strings.TrimSpace(voter.ID) == "" {
		observability.ObserveVote(outcome(domain.ErrUnauthorized))
		return domain.Review{}, domain.ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.votes.has(voter.ID, reviewID) {
		observability.ObserveVote(outcome(domain.ErrAlreadyVoted))
		return domain.Review{}, domain.ErrAlreadyVoted
	}

	reviews, err := loadCollection[domain.Review](ctx, s.store, domain.KeyReviews)
	if err != nil {
		observability.ObserveVote(outcome(err))
		return domain.Review{}, err
	}
	i := indexOf(reviews, func(r domain.Review) bool { return r.ID == reviewID })
	if i < 0 {
		observability.ObserveVote(outcome(domain.ErrNotFound))
		return domain.Review{}, domain.ErrNotFound
	}
	reviews[i].HelpfulCount++
	if err := saveCollection(ctx, s.store, domain.KeyReviews, reviews); err != nil {
		observability.ObserveVote(outcome(err))
		return domain.Review{}, err
	}
	s.votes.record(voter.ID, reviewID)

	observability.ObserveVote("counted")
	log.Debug().Str("review", reviewID).Str("voter", voter.ID).Int("helpful", reviews[i].HelpfulCount).Msg("helpful vote")
	return reviews[i], nil
}

func indexOf[T any](items []T, match func(T) bool) int {
	for i := range items {
		if match(items[i]) {
			return i
		}
	}
	return -1
}

// outcome is the metrics label for an error returned by the service.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidRating):
		return "invalid_rating"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "duplicate"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrStorage):
		return "storage_error"
	default:
		return "error"
	}
}
