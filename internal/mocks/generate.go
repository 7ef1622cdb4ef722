package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LiveFeed --dir ../usecase --output usecase --outpkg usecasemock --filename live_feed_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LiveStateSource --dir ../interfaces/httpapi --output httpapi --outpkg httpapimock --filename live_state_source_mock.go
