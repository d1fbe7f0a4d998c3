package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatHistory_AppendAndSummaries(t *testing.T) {
	var h ChatHistory

	require.NoError(t, h.Append("nameera", Message{ID: "a", Text: "Is this available?", Sender: SenderUser, Timestamp: testNow}))
	require.NoError(t, h.Append("gulnaazkhan", Message{ID: "b", Text: "Hello", Sender: SenderUser, Timestamp: testNow.Add(time.Minute)}))
	require.NoError(t, h.Append("nameera", Message{ID: "c", Text: "Yes!", Sender: SenderCounterparty, Timestamp: testNow.Add(2 * time.Minute)}))

	assert.Len(t, h.Thread("nameera"), 2)
	assert.Empty(t, h.Thread("nobody"))

	summaries := h.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "nameera", summaries[0].Username)
	assert.Equal(t, "Yes!", summaries[0].LastMessage.Text)
	assert.Equal(t, 2, summaries[0].Count)
	assert.Equal(t, "gulnaazkhan", summaries[1].Username)
}

func TestChatHistory_AppendValidates(t *testing.T) {
	var h ChatHistory

	assert.ErrorIs(t, h.Append("", Message{Text: "hi", Sender: SenderUser}), ErrValidation)
	assert.ErrorIs(t, h.Append("nameera", Message{Text: "  ", Sender: SenderUser}), ErrValidation)
	assert.ErrorIs(t, h.Append("nameera", Message{Text: "hi", Sender: "bot"}), ErrValidation)
	assert.Empty(t, h)
}

func TestReview_Validation(t *testing.T) {
	_, err := NewReview("r1", "", 0, "nice", testNow)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewReview("r1", "", 6, "nice", testNow)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = NewReview("r1", "", 4, "   ", testNow)
	assert.ErrorIs(t, err, ErrValidation)

	r, err := NewReview("r1", "", 4, " Lovely fabric ", testNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultReviewerName, r.ReviewerName)
	assert.Equal(t, "Lovely fabric", r.Text)

	assert.InDelta(t, 3.5, Reviews{{Rating: 3}, {Rating: 4}}.AverageRating(), 0.0001)
}

func TestShippingAddress_Validate(t *testing.T) {
	addr := ShippingAddress{
		FullName: "Ayesha", AddressLine1: "House 12", City: "Dhaka", State: "Dhaka",
		PostalCode: "1207", Country: "Bangladesh", PhoneNumber: "+8801700000000",
	}
	require.NoError(t, addr.Validate())

	addr.PostalCode = " "
	err := addr.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "shippingAddress.postalCode", verr.Field)
}

func TestFeed_LikesAndSavedItems(t *testing.T) {
	var liked LikedPosts
	assert.True(t, liked.Toggle("2"))
	assert.True(t, liked.Contains("2"))
	assert.False(t, liked.Toggle("2"))
	assert.Empty(t, liked)

	var saved SavedItems
	require.NoError(t, saved.Save("1", "Wedding ideas"))
	assert.ErrorIs(t, saved.Save("1", "Wedding ideas"), ErrDuplicate)
	require.NoError(t, saved.Save("1", "Eid"))
	assert.Equal(t, "Eid", saved["1"])
	assert.ErrorIs(t, saved.Save("1", ""), ErrValidation)
	require.NoError(t, saved.Unsave("1"))
	assert.ErrorIs(t, saved.Unsave("1"), ErrNotFound)
}
