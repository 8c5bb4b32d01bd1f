package storage_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docket/internal/domain"
	"docket/internal/storage"
)

func TestResolver_Resolve(t *testing.T) {
	r := storage.NewResolver("/var/lib/docket")
	matterID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	docID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	p, err := r.Resolve(matterID, docID, 3, ".pdf")
	require.NoError(t, err)

	assert.Equal(t,
		"/var/lib/docket/matters/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222R3.pdf", p)
}

func TestResolver_MatterDir(t *testing.T) {
	r := storage.NewResolver("/data/")
	matterID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	assert.Equal(t, "/data/matters/11111111-1111-1111-1111-111111111111", r.MatterDir(matterID))
}

func TestResolver_EmptyRootIsRelative(t *testing.T) {
	r := storage.NewResolver("")
	matterID := uuid.New()
	docID := uuid.New()

	p, err := r.Resolve(matterID, docID, 1, "docx")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("matters/%s/%sR1.docx", matterID, docID), p)
}

func TestResolver_RoundTrip(t *testing.T) {
	roots := []string{"/var/lib/docket", "/", "", "relative/root"}
	exts := []string{"pdf", "docx", "tar.gz", "TXT", "x"}
	numbers := []int{0, 1, 2, 9, 10, 123456}

	for _, root := range roots {
		r := storage.NewResolver(root)
		for _, ext := range exts {
			for _, n := range numbers {
				matterID := uuid.New()
				docID := uuid.New()

				p, err := r.Resolve(matterID, docID, n, ext)
				require.NoError(t, err)

				got, err := r.Parse(p)
				require.NoError(t, err, "path %s", p)
				assert.Equal(t, storage.Placement{
					MatterID:       matterID,
					DocumentID:     docID,
					RevisionNumber: n,
					Extension:      ext,
				}, got)
			}
		}
	}
}

func TestResolver_NormalizesExtensionOnce(t *testing.T) {
	r := storage.NewResolver("/root")
	matterID := uuid.New()
	docID := uuid.New()

	withDot, err := r.Resolve(matterID, docID, 1, ".pdf")
	require.NoError(t, err)
	withDots, err := r.Resolve(matterID, docID, 1, "..pdf")
	require.NoError(t, err)
	plain, err := r.Resolve(matterID, docID, 1, "pdf")
	require.NoError(t, err)

	assert.Equal(t, plain, withDot)
	assert.Equal(t, plain, withDots)
}

func TestResolver_InvalidExtension(t *testing.T) {
	r := storage.NewResolver("/root")

	for _, ext := range []string{"", ".", "  ", "a/b", `a\b`, "a..b"} {
		_, err := r.Resolve(uuid.New(), uuid.New(), 1, ext)
		assert.ErrorIs(t, err, domain.ErrValidation, "ext %q", ext)
	}
}

func TestResolver_ParseRejectsForeignPaths(t *testing.T) {
	r := storage.NewResolver("/root")
	good := fmt.Sprintf("/root/matters/%s/%sR1.pdf", uuid.New(), uuid.New())
	_, err := r.Parse(good)
	require.NoError(t, err)

	cases := []string{
		"/elsewhere/matters/x/y",
		"/root/matters/not-a-uuid/" + uuid.NewString() + "R1.pdf",
		fmt.Sprintf("/root/matters/%s/%sX1.pdf", uuid.New(), uuid.New()),
		fmt.Sprintf("/root/matters/%s/%sR.pdf", uuid.New(), uuid.New()),
		fmt.Sprintf("/root/matters/%s/%sR1", uuid.New(), uuid.New()),
		fmt.Sprintf("/root/matters/%s/%sR1a.pdf", uuid.New(), uuid.New()),
		fmt.Sprintf("/root/other/%s/%sR1.pdf", uuid.New(), uuid.New()),
	}
	for _, p := range cases {
		_, err := r.Parse(p)
		assert.ErrorIs(t, err, domain.ErrInvalidPath, "path %s", p)
	}
}
