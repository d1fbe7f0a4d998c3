package repository

const (
	KeyFavorites   = "favorites"
	KeyCart        = "cartItems"
	KeyCollections = "collections"
	KeyChatHistory = "chatHistory"
	KeyUser        = "user"
	KeyPosts       = "posts"
	KeyLikedPosts  = "likedPosts"
	KeySavedItems  = "savedItems"
	KeyOrders      = "orders"
	KeySettings    = "settings"

	reviewsKeyPrefix = "reviews_"
)

func ReviewsKey(productID string) string {
	return reviewsKeyPrefix + productID
}
