package events

import "evently-client/internal/graphql"

var (
	eventsQuery = graphql.Document{
		Name: "Events",
		Query: `
			query {
				events {
					_id
					title
					description
					date
					price
					creator {
						_id
						email
					}
				}
			}
		`,
	}

	createEventMutation = graphql.Document{
		Name: "CreateEvent",
		Query: `
			mutation CreateEvent($title: String!, $desc: String!, $price: Float!, $date: String!) {
				createEvent(eventInput: {title: $title, description: $desc, price: $price, date: $date}) {
					_id
					title
					description
					date
					price
				}
			}
		`,
	}
)
