package bookings

import "evently-client/internal/graphql"

var (
	bookingsQuery = graphql.Document{
		Name: "Bookings",
		Query: `
			query {
				bookings {
					_id
					createdAt
					event {
						_id
						title
						date
						price
					}
				}
			}
		`,
	}

	bookEventMutation = graphql.Document{
		Name: "BookEvent",
		Query: `
			mutation BookEvent($id: ID!) {
				bookEvent(eventId: $id) {
					_id
					createdAt
					updatedAt
				}
			}
		`,
	}

	cancelBookingMutation = graphql.Document{
		Name: "CancelBooking",
		Query: `
			mutation CancelBooking($id: ID!) {
				cancelBooking(bookingId: $id) {
					_id
					title
				}
			}
		`,
	}
)
