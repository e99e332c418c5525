package match

import (
	"context"
	"errors"
	"testing"

	"crossfade/internal/catalog"
	"crossfade/internal/logging"
)

func existsAll(ids ...int64) (ExistsFunc, *[]int64) {
	allowed := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		allowed[id] = struct{}{}
	}
	var probed []int64
	fn := func(ctx context.Context, id int64) (bool, error) {
		probed = append(probed, id)
		_, ok := allowed[id]
		return ok, nil
	}
	return fn, &probed
}

func TestSelectBestExistingEmptyList(t *testing.T) {
	exists, probed := existsAll()
	if _, ok := SelectBestExisting(context.Background(), logging.NewNop(), nil, "Title", 3, exists); ok {
		t.Fatal("expected no selection for empty candidates")
	}
	if len(*probed) != 0 {
		t.Fatalf("existence check must not run for empty list, got %d probes", len(*probed))
	}
}

func TestSelectBestExistingPicksHighestScore(t *testing.T) {
	candidates := []catalog.Candidate{
		{ID: 1, Title: "Song (Live)"},
		{ID: 2, Title: "Song (Official Video)"},
	}
	exists, _ := existsAll(1, 2)

	id, ok := SelectBestExisting(context.Background(), logging.NewNop(), candidates, "Song", 3, exists)
	if !ok || id != 2 {
		t.Fatalf("expected id 2, got id=%d ok=%v", id, ok)
	}
}

func TestSelectBestExistingFallsThroughMissingItems(t *testing.T) {
	candidates := []catalog.Candidate{
		{ID: 1, Title: "Song (Official Music Video)"},
		{ID: 2, Title: "Song (Official Video)"},
		{ID: 3, Title: "Song"},
	}
	// The two best-scored items were taken down; the last survivor wins.
	exists, probed := existsAll(2)

	id, ok := SelectBestExisting(context.Background(), logging.NewNop(), candidates, "Song", 3, exists)
	if !ok || id != 2 {
		t.Fatalf("expected id 2, got id=%d ok=%v", id, ok)
	}
	// Exact match outranks the official uploads, which keep remote order.
	if len(*probed) != 3 || (*probed)[0] != 3 || (*probed)[1] != 1 || (*probed)[2] != 2 {
		t.Fatalf("unexpected probe order %v", *probed)
	}
}

func TestSelectBestExistingProbeCap(t *testing.T) {
	candidates := []catalog.Candidate{
		{ID: 1, Title: "Song (Official Music Video)"},
		{ID: 2, Title: "Song (Official Video)"},
		{ID: 3, Title: "Song (Music Video)"},
		{ID: 4, Title: "Song"},
	}
	exists, probed := existsAll() // everything fails

	if _, ok := SelectBestExisting(context.Background(), logging.NewNop(), candidates, "Song", 3, exists); ok {
		t.Fatal("expected no selection")
	}
	if len(*probed) != 3 {
		t.Fatalf("expected probes capped at 3, got %d", len(*probed))
	}
}

func TestSelectBestExistingUnscoredFallback(t *testing.T) {
	candidates := []catalog.Candidate{
		{ID: 9, Title: "Whatever"},
		{ID: 8, Title: "Else"},
	}
	exists, probed := existsAll(8)

	id, ok := SelectBestExisting(context.Background(), logging.NewNop(), candidates, "", 3, exists)
	if !ok || id != 8 {
		t.Fatalf("expected id 8, got id=%d ok=%v", id, ok)
	}
	if (*probed)[0] != 9 {
		t.Fatalf("expected original order probing, got %v", *probed)
	}
}

func TestSelectBestExistingFailClosedOnError(t *testing.T) {
	candidates := []catalog.Candidate{
		{ID: 1, Title: "Song"},
		{ID: 2, Title: "Song (Official Video)"},
	}
	fn := func(ctx context.Context, id int64) (bool, error) {
		if id == 1 {
			return false, errors.New("transport down")
		}
		return true, nil
	}

	id, ok := SelectBestExisting(context.Background(), logging.NewNop(), candidates, "Song", 3, fn)
	if !ok || id != 2 {
		t.Fatalf("expected fallthrough to id 2, got id=%d ok=%v", id, ok)
	}
}

func TestSelectBestExistingAllRejected(t *testing.T) {
	candidates := []catalog.Candidate{
		{ID: 1, Title: "Song Reaction"},
		{ID: 2, Title: "Song Cover"},
	}
	exists, probed := existsAll(1, 2)

	if _, ok := SelectBestExisting(context.Background(), logging.NewNop(), candidates, "Song", 3, exists); ok {
		t.Fatal("expected rejection of all candidates")
	}
	if len(*probed) != 0 {
		t.Fatalf("rejected candidates must not be probed, got %v", *probed)
	}
}
