package di

import (
	"innkeep/config"
	"innkeep/infras/mongo"
	"innkeep/infras/otel"
	"innkeep/infras/postgres"
	bookingRepository "innkeep/internal/domains/booking/repository"
	pricingRepository "innkeep/internal/domains/pricing/repository"
	roomRepository "innkeep/internal/domains/room/repository"
	orderRepository "innkeep/internal/domains/serviceorder/repository"
	"innkeep/shared/transaction"

	"github.com/rs/zerolog/log"
)

// Stores groups the repositories of one storage driver together with the
// transactor that spans them. Only the configured driver is connected.
type Stores struct {
	Rooms           roomRepository.Room
	Bookings        bookingRepository.Booking
	Orders          orderRepository.ServiceOrder
	Menu            orderRepository.Menu
	RoomTypes       pricingRepository.RoomType
	Calendar        pricingRepository.Calendar
	PaymentAccounts pricingRepository.PaymentAccount
	Transactor      transaction.Transactor
}

func ProvideStores(cfg *config.Config, otel otel.Otel) Stores {
	if cfg.DB.Driver == config.DriverMongo {
		conn := mongo.New(cfg)
		if conn == nil {
			log.Fatal().Msg("Could not connect to MongoDB")
		}

		return Stores{
			Rooms:           roomRepository.NewDocument(conn, otel),
			Bookings:        bookingRepository.NewDocument(conn, otel),
			Orders:          orderRepository.NewDocument(conn, otel),
			Menu:            orderRepository.NewMenuDocument(conn, otel),
			RoomTypes:       pricingRepository.NewRoomTypeDocument(conn, otel),
			Calendar:        pricingRepository.NewCalendarDocument(conn, otel),
			PaymentAccounts: pricingRepository.NewPaymentAccountDocument(conn, otel),
			Transactor:      transaction.NewMongo(conn, otel),
		}
	}

	if cfg.DB.Driver != config.DriverPostgres {
		log.Fatal().Str("driver", cfg.DB.Driver).Msg("Unsupported database driver")
	}

	db := postgres.New(cfg)

	return Stores{
		Rooms:           roomRepository.New(db, otel),
		Bookings:        bookingRepository.New(db, otel),
		Orders:          orderRepository.New(db, otel),
		Menu:            orderRepository.NewMenu(db, otel),
		RoomTypes:       pricingRepository.NewRoomType(db, otel),
		Calendar:        pricingRepository.NewCalendar(db, otel),
		PaymentAccounts: pricingRepository.NewPaymentAccount(db, otel),
		Transactor:      transaction.NewPostgres(db, cfg, otel),
	}
}
