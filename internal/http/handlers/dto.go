package handlers

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignUpRequest struct {
	Username       string `json:"username"`
	Password       string `json:"password"`
	ShortBiography string `json:"short_biography"`
	BirthDate      string `json:"birth_date"`
	Country        string `json:"country"`
	City           string `json:"city"`
}

type ProfileUpdateRequest struct {
	ShortBiography string   `json:"short_biography"`
	BirthDate      string   `json:"birth_date"`
	Country        string   `json:"country"`
	City           string   `json:"city"`
	Interests      []string `json:"interests"`
}

type UserResponse struct {
	Id             int    `json:"id"`
	Username       string `json:"username"`
	IsActive       bool   `json:"is_active"`
	ShortBiography string `json:"short_biography"`
	BirthDate      string `json:"birth_date,omitempty"`
	Country        string `json:"country"`
	City           string `json:"city"`
}

type ProfileResponse struct {
	UserResponse
	Interests          []string `json:"interests"`
	PostsCount         int      `json:"posts_number"`
	SubscribersCount   int      `json:"subscribers_number"`
	SubscriptionsCount int      `json:"subscriptions_number"`
}

// UserProfileView is the public view of another user's profile.
type UserProfileView struct {
	Id               int            `json:"id"`
	Username         string         `json:"username"`
	ShortBiography   string         `json:"short_biography"`
	Country          string         `json:"country"`
	City             string         `json:"city"`
	Interests        []string       `json:"interests"`
	SubscribersCount int            `json:"subscribers_number"`
	Posts            []PostResponse `json:"posts"`
}

type LoginResult struct {
	Token string `json:"token"`
}

type RegisterResult struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

type PostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type PostResponse struct {
	Id            int    `json:"id"`
	UserId        int    `json:"user_id"`
	Username      string `json:"username"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	DatePublished string `json:"date_published"`
}

type Meta struct {
	TotalCount int `json:"total_count"`
}

type PostsSearchResult struct {
	Data []PostResponse `json:"data"`
	Meta Meta           `json:"meta,omitempty"`
}
