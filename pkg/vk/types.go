package vk

// Profile is the portion of the VK users.get response we care about.
// VK returns a much larger object; only the fields needed to build a
// local user record are unmarshalled.
type Profile struct {
	ID        int64  `json:"id"`        // VK's numeric user ID, stable
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo200  string `json:"photo_200"` // avatar URL, 200px variant
}

// usersGetResponse wraps the standard VK API envelope.
type usersGetResponse struct {
	Response []Profile `json:"response"`
	Error    *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"error_code"`
	Message string `json:"error_msg"`
}
