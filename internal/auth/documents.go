package auth

import "evently-client/internal/graphql"

var (
	loginQuery = graphql.Document{
		Name: "Login",
		Query: `
			query Login($email: String!, $password: String!) {
				login(email: $email, password: $password) {
					userId
					token
					tokenExpiration
				}
			}
		`,
	}

	createUserMutation = graphql.Document{
		Name: "CreateUser",
		Query: `
			mutation CreateUser($email: String!, $password: String!) {
				createUser(userInput: {email: $email, password: $password}) {
					_id
					email
				}
			}
		`,
	}
)
