package client

import (
	"encoding/json"
	"fmt"
	"net/url"

	"gigbook/pkg/model"
)

type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(httpClient *HttpClient) *UserClient {
	return &UserClient{httpClient: httpClient}
}

func (c *UserClient) Signup(username, password, usertype string) (*Response, error) {
	return c.httpClient.POST("/users/signup", model.SignupRequest{
		Username: username,
		Password: password,
		Usertype: usertype,
	})
}

func (c *UserClient) Login(username, password string) (*Response, error) {
	return c.httpClient.POST("/users/login", model.LoginRequest{
		Username: username,
		Password: password,
	})
}

func (c *UserClient) Logout() (*Response, error) {
	return c.httpClient.GET("/users/logout")
}

func (c *UserClient) CheckSession() (*Response, error) {
	return c.httpClient.GET("/users/check-session")
}

func (c *UserClient) GetAll() (*Response, error) {
	return c.httpClient.GET("/users")
}

func (c *UserClient) GetByUsername(username string) (*Response, error) {
	return c.httpClient.GET("/users/name/" + url.PathEscape(username))
}

func (c *UserClient) DeleteByUsername(username string) (*Response, error) {
	return c.httpClient.DELETE("/users?username=" + url.QueryEscape(username))
}

func (c *UserClient) UpdatePerformerProfile(update model.ProfileUpdate) (*Response, error) {
	return c.httpClient.PATCH("/makeprofileperformer", update)
}

func (c *UserClient) UpdateVenueProfile(username string, update model.VenueProfileUpdate) (*Response, error) {
	return c.httpClient.POST("/makeprofilevenue/"+url.PathEscape(username), update)
}

func (c *UserClient) Profile() (*Response, error) {
	return c.httpClient.GET("/profile")
}

func (c *UserClient) SelectedFor() (*Response, error) {
	return c.httpClient.GET("/selectedFor")
}

func (c *UserClient) ChoosePerformer(performerName string, selection model.Selection) (*Response, error) {
	return c.httpClient.POST("/users/choosePerformer/"+url.PathEscape(performerName), selection)
}

func (c *UserClient) DecodeUser(resp *Response) (*model.User, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode user wrapper: %w", err)
	}

	var user model.User
	if err := json.Unmarshal(wrapper.Data, &user); err != nil {
		return nil, fmt.Errorf("could not decode user json: %w", err)
	}
	return &user, nil
}

func (c *UserClient) DecodeUsers(resp *Response) ([]*model.User, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode users wrapper: %w", err)
	}

	var users []*model.User
	if err := json.Unmarshal(wrapper.Data, &users); err != nil {
		return nil, fmt.Errorf("could not decode user list: %w", err)
	}
	return users, nil
}
