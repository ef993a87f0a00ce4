package domain

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Admin bool   `json:"admin,omitempty"`
}

type Favorite struct {
	UserID    int64   `json:"userId"`
	ProductID int64   `json:"productId"`
	Product   Product `json:"product,omitempty"`
}
