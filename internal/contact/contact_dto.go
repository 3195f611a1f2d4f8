package contact

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=255"`
	Message string `json:"message" binding:"required,max=10000"`
}

type ContactResponse struct {
	ID string `json:"id"`
}
