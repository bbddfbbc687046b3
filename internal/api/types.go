// ABOUTME: Data types exchanged with the Livraria backend
// ABOUTME: JSON shapes mirror the backend REST contract

package api

// User is the authenticated user's profile record.
type User struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	CPF         string `json:"cpf"`
	DateOfBirth string `json:"date_of_birth"`
}

// Book is a catalog entry.
type Book struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// CartItem is one line of the server-side cart. The backend owns these;
// the client only ever holds a cached copy.
type CartItem struct {
	ID       int  `json:"id"`
	Book     Book `json:"book"`
	Quantity int  `json:"quantity"`
}

// Order is a read-only order history entry.
type Order struct {
	ID        int     `json:"id"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// InvoiceItem is one line of an invoice.
type InvoiceItem struct {
	BookTitle string  `json:"book_title"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// InvoiceUser identifies the buyer on an invoice.
type InvoiceUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Invoice is the full invoice for a single order.
type Invoice struct {
	OrderID   int           `json:"order_id"`
	Status    string        `json:"status"`
	CreatedAt string        `json:"created_at"`
	User      InvoiceUser   `json:"user"`
	Items     []InvoiceItem `json:"items"`
	Total     float64       `json:"total"`
}

// RegisterInput carries the registration form fields. The confirmation
// password is checked client-side and never sent.
type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CPF         string `json:"cpf"`
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
}
